package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/job-scam-detector/internal/adapters/store"
	"github.com/mikey/job-scam-detector/internal/auth"
	"github.com/mikey/job-scam-detector/internal/core"
	"github.com/mikey/job-scam-detector/internal/metrics"
	"go.uber.org/zap"
)

const (
	maxUploadBytes  = 10 << 20
	minPasswordLen  = 6
	defaultPageSize = 50
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ─── Auth ────────────────────────────────────────────────────────────────────

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(body.Username)
	email := strings.ToLower(strings.TrimSpace(body.Email))
	password := strings.TrimSpace(body.Password)

	if username == "" {
		jsonError(w, "Username is required", http.StatusBadRequest)
		return
	}
	if email == "" || password == "" {
		jsonError(w, "Email and password are required", http.StatusBadRequest)
		return
	}
	if !emailRe.MatchString(email) {
		jsonError(w, "Invalid email format", http.StatusBadRequest)
		return
	}
	if len(password) < minPasswordLen {
		jsonError(w, fmt.Sprintf("Password must be at least %d characters", minPasswordLen), http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		jsonError(w, "Signup failed", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	user := &core.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			jsonError(w, "Email already registered", http.StatusConflict)
			return
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		jsonError(w, "Signup failed", http.StatusInternalServerError)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		jsonError(w, "Signup failed", http.StatusInternalServerError)
		return
	}

	jsonOK(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"token":   token,
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	password := strings.TrimSpace(body.Password)
	if email == "" || password == "" {
		jsonError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, password) {
		jsonError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		jsonError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	jsonOK(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims := claimsFrom(r)
	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		jsonError(w, "User not found", http.StatusNotFound)
		return
	}

	jsonOK(w, http.StatusOK, map[string]string{
		"name":  user.Username,
		"email": user.Email,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims := claimsFrom(r)
	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		jsonError(w, "User not found", http.StatusNotFound)
		return
	}

	jsonOK(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Tokens are stateless, so logout is a client-side acknowledgement only.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonOK(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// ─── Analysis ────────────────────────────────────────────────────────────────

// analyzeResult augments the analysis result with the stored record's
// identity, matching the response shape clients already consume.
type analyzeResult struct {
	*core.AnalysisResult
	AnalysisID string    `json:"analysis_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	input, err := s.parseAnalysisInput(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(strings.TrimSpace(input.Text)) < s.minTextLength {
		jsonError(w,
			fmt.Sprintf("Please provide job description text (minimum %d characters) or upload a file", s.minTextLength),
			http.StatusBadRequest)
		return
	}

	claims := claimsFrom(r)

	start := time.Now()
	rec := s.service.Analyze(r.Context(), claims.UserID, input)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.AnalysesTotal.WithLabelValues(string(rec.Result.RiskLevel)).Inc()

	jsonOK(w, http.StatusOK, map[string]any{
		"message": "Analysis completed",
		"result": analyzeResult{
			AnalysisResult: rec.Result,
			AnalysisID:     rec.ID,
			CreatedAt:      rec.CreatedAt,
		},
	})
}

// parseAnalysisInput accepts either a JSON body, URL-encoded form fields or a
// multipart upload carrying a plain-text file in the "file" field. An uploaded
// file takes precedence over the text field.
func (s *Server) parseAnalysisInput(r *http.Request) (core.AnalysisInput, error) {
	var input core.AnalysisInput

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch contentType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return input, fmt.Errorf("invalid multipart request: %w", err)
		}
		input.Text = r.FormValue("text")
		input.CompanyEmail = r.FormValue("company_email")
		input.CompanyWebsite = r.FormValue("company_website")

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".txt" {
				return input, fmt.Errorf("unsupported file type %q, only .txt is accepted", ext)
			}
			data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
			if err != nil {
				return input, fmt.Errorf("failed to read uploaded file: %w", err)
			}
			input.Text = string(data)
		}
	case "application/json":
		var body struct {
			Text           string `json:"text"`
			CompanyEmail   string `json:"company_email"`
			CompanyWebsite string `json:"company_website"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return input, errors.New("invalid JSON body")
		}
		input.Text = body.Text
		input.CompanyEmail = body.CompanyEmail
		input.CompanyWebsite = body.CompanyWebsite
	default:
		if err := r.ParseForm(); err != nil {
			return input, errors.New("invalid form body")
		}
		input.Text = r.FormValue("text")
		input.CompanyEmail = r.FormValue("company_email")
		input.CompanyWebsite = r.FormValue("company_website")
	}

	return input, nil
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/analysis/result/")
	if id == "" || strings.Contains(id, "/") {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	claims := claimsFrom(r)
	rec, err := s.store.GetAnalysis(r.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrAnalysisNotFound) {
			jsonError(w, "Analysis not found", http.StatusNotFound)
			return
		}
		s.logger.Error("Failed to load analysis", zap.Error(err), zap.String("analysis_id", id))
		jsonError(w, "Failed to retrieve analysis", http.StatusInternalServerError)
		return
	}

	jsonOK(w, http.StatusOK, map[string]any{"analysis": rec})
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := queryInt(r, "limit", defaultPageSize)
	skip := queryInt(r, "skip", 0)

	claims := claimsFrom(r)
	recs, total, err := s.store.ListAnalyses(r.Context(), claims.UserID, limit, skip)
	if err != nil {
		s.logger.Error("Failed to list analyses", zap.Error(err), zap.String("user_id", claims.UserID))
		jsonError(w, "Failed to retrieve analyses", http.StatusInternalServerError)
		return
	}

	jsonOK(w, http.StatusOK, map[string]any{
		"analyses": recs,
		"total":    total,
		"limit":    limit,
		"skip":     skip,
	})
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/dashboard/analyses/")
	if id == "" || strings.Contains(id, "/") {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	claims := claimsFrom(r)
	if err := s.store.DeleteAnalysis(r.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, store.ErrAnalysisNotFound) {
			jsonError(w, "Analysis not found or unauthorized", http.StatusNotFound)
			return
		}
		s.logger.Error("Failed to delete analysis", zap.Error(err), zap.String("analysis_id", id))
		jsonError(w, "Failed to delete analysis", http.StatusInternalServerError)
		return
	}

	jsonOK(w, http.StatusOK, map[string]string{"message": "Analysis deleted successfully"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims := claimsFrom(r)
	stats, err := s.store.Stats(r.Context(), claims.UserID)
	if err != nil {
		s.logger.Error("Failed to compute stats", zap.Error(err), zap.String("user_id", claims.UserID))
		jsonError(w, "Failed to retrieve stats", http.StatusInternalServerError)
		return
	}
	stats.AverageTrustScore = math.Round(stats.AverageTrustScore*100) / 100

	jsonOK(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, http.StatusOK, map[string]string{"status": "ok"})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
