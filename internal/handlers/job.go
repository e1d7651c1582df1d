package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobbook/jobbook-backend/internal/middleware"
	"github.com/jobbook/jobbook-backend/internal/services"
	"github.com/jobbook/jobbook-backend/internal/types"
)

type JobHandler struct {
	jobService services.JobService
	uploadsDir string
}

func NewJobHandler(jobService services.JobService, uploadsDir string) *JobHandler {
	return &JobHandler{jobService: jobService, uploadsDir: uploadsDir}
}

func (jh *JobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	orderBy := c.DefaultQuery("order_by", "-created")

	result, err := jh.jobService.List(c.Request.Context(), orderBy, page)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// MyJobs lists the caller's jobs on one side of the relationship:
// role=principal or role=contractor, optionally narrowed by status or the
// "in_progress" pseudo-status.
func (jh *JobHandler) MyJobs(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
		return
	}
	role := c.DefaultQuery("role", "contractor")
	status := c.Query("status")

	jobs, err := jh.jobService.ListForUser(c.Request.Context(), user.ID, role, status)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"jobs": jobs})
}

// Create accepts a multipart form so the job can carry an optional attachment
// in the same request. The caller becomes the principal.
func (jh *JobHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
		return
	}

	input := services.JobCreateInput{
		PrincipalID: user.ID,
		Kind:        types.JobKind(c.PostForm("kind")),
		Description: c.PostForm("description"),
		Comments:    c.PostForm("comments"),
	}

	contractorID, err := uuid.Parse(c.PostForm("contractor_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("contractor_id must be a uuid"))
		return
	}
	input.ContractorID = contractorID

	tradeID, err := uuid.Parse(c.PostForm("trade_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("trade_id must be a uuid"))
		return
	}
	input.TradeID = tradeID

	deadline, err := time.Parse(time.DateOnly, c.PostForm("deadline"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("deadline must be YYYY-MM-DD"))
		return
	}
	input.Deadline = deadline

	kmFrom, err := strconv.ParseFloat(c.PostForm("km_from"), 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("km_from must be a number"))
		return
	}
	input.KmFrom = kmFrom

	if raw := c.PostForm("km_to"); raw != "" {
		kmTo, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("km_to must be a number"))
			return
		}
		input.KmTo = &kmTo
	}

	if fileHeader, fErr := c.FormFile("file"); fErr == nil {
		upload, readErr := readUpload(fileHeader)
		if readErr != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", readErr)
			return
		}
		input.File = upload
	}

	job, err := jh.jobService.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"job": job})
}

func (jh *JobHandler) Get(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid job id"))
		return
	}
	job, files, err := jh.jobService.GetByID(c.Request.Context(), jobID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"job": job, "files": files})
}

func (jh *JobHandler) Update(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid job id"))
		return
	}

	var req struct {
		ContractorID string   `json:"contractor_id"`
		Kind         string   `json:"kind"`
		Description  string   `json:"description"`
		KmFrom       float64  `json:"km_from"`
		KmTo         *float64 `json:"km_to"`
		Deadline     string   `json:"deadline"`
		Comments     string   `json:"comments"`
		Status       string   `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}

	contractorID, err := uuid.Parse(req.ContractorID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("contractor_id must be a uuid"))
		return
	}
	deadline, err := time.Parse(time.DateOnly, req.Deadline)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("deadline must be YYYY-MM-DD"))
		return
	}

	input := services.JobUpdateInput{
		ContractorID: contractorID,
		Kind:         types.JobKind(req.Kind),
		Description:  req.Description,
		KmFrom:       req.KmFrom,
		KmTo:         req.KmTo,
		Deadline:     deadline,
		Comments:     req.Comments,
		Status:       types.JobStatus(req.Status),
	}

	job, err := jh.jobService.Update(c.Request.Context(), jobID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"job": job})
}

func (jh *JobHandler) DownloadFile(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid job id"))
		return
	}
	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid file id"))
		return
	}

	file, err := jh.jobService.GetFile(c.Request.Context(), jobID, fileID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.FileAttachment(filepath.Join(jh.uploadsDir, file.StorageKey), file.OriginalName)
}

func readUpload(fileHeader *multipart.FileHeader) (*services.JobFileUpload, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("could not read uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("could not read uploaded file")
	}
	return &services.JobFileUpload{Name: fileHeader.Filename, Data: data}, nil
}
