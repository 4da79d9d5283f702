package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medvault/medvault/internal/common"
	"github.com/medvault/medvault/internal/server/patients"
	"github.com/medvault/medvault/internal/server/users"
)

const dateLayout = "2006-01-02"

// Response is the envelope every endpoint replies with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func okResponse(data any) Response {
	return Response{Success: true, Data: data}
}

func errorResponse(message string) Response {
	return Response{Success: false, Message: message}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Token     string `json:"token,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

func (s *HTTPServer) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, okResponse(gin.H{"status": "ok"}))
}

func (s *HTTPServer) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload"))
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("dateOfBirth must be in YYYY-MM-DD format"))
		return
	}

	result, err := s.users.Register(c.Request.Context(), users.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		DateOfBirth: dob,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorIneligibleAge):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusBadRequest, errorResponse("A user with this email already exists"))
		default:
			s.logger.Error(c.Request.Context(), "registration failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	c.JSON(http.StatusOK, okResponse(authResponse{
		Email:    result.Email,
		FullName: result.FullName,
	}))
}

func (s *HTTPServer) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload"))
		return
	}

	result, err := s.users.Login(c.Request.Context(), users.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, errorResponse("Invalid email or password"))
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, okResponse(authResponse{
		Email:     result.Email,
		FullName:  result.FullName,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	}))
}

func (s *HTTPServer) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, okResponse(gin.H{
		"id":       c.GetString(UserIDKey),
		"email":    c.GetString(EmailKey),
		"fullName": c.GetString(FullNameKey),
	}))
}

type patientRequest struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	Age         int    `json:"age" binding:"min=0"`
}

type patientBatchRequest struct {
	Patients []patientRequest `json:"patients" binding:"required,min=1,dive"`
}

type patientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Age         int    `json:"age"`
	LoadedBy    string `json:"loadedBy"`
	CreatedAt   string `json:"createdAt"`
}

func toPatientResponse(p *patients.Patient) patientResponse {
	return patientResponse{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth.Format(dateLayout),
		Age:         p.Age,
		LoadedBy:    p.LoadedBy,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func (s *HTTPServer) CreatePatient(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload"))
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("dateOfBirth must be in YYYY-MM-DD format"))
		return
	}

	patient, err := s.patients.Create(c.Request.Context(), req.Name, dob, req.Age, c.GetString(EmailKey))
	if err != nil {
		s.logger.Error(c.Request.Context(), "patient create failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, okResponse(toPatientResponse(patient)))
}

func (s *HTTPServer) CreatePatientBatch(c *gin.Context) {
	var req patientBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request payload"))
		return
	}

	batch := make([]*patients.Patient, 0, len(req.Patients))
	for _, item := range req.Patients {
		patient, err := s.parsePatient(&item)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		batch = append(batch, patient)
	}

	created, err := s.patients.CreateBatch(c.Request.Context(), batch, c.GetString(EmailKey))
	if err != nil {
		s.logger.Error(c.Request.Context(), "patient batch create failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, okResponse(gin.H{"created": created}))
}

func (s *HTTPServer) ListPatients(c *gin.Context) {
	list, err := s.patients.GetAll(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "patient list failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	items := make([]patientResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPatientResponse(p))
	}

	c.JSON(http.StatusOK, okResponse(items))
}

func (s *HTTPServer) MyUploads(c *gin.Context) {
	list, err := s.patients.GetByLoader(c.Request.Context(), c.GetString(EmailKey))
	if err != nil {
		s.logger.Error(c.Request.Context(), "patient uploads query failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	items := make([]patientResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPatientResponse(p))
	}

	c.JSON(http.StatusOK, okResponse(items))
}

func (s *HTTPServer) parsePatient(req *patientRequest) (*patients.Patient, error) {
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, errors.New("dateOfBirth must be in YYYY-MM-DD format")
	}

	return &patients.Patient{
		Name:        req.Name,
		DateOfBirth: dob,
		Age:         req.Age,
	}, nil
}
