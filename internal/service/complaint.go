package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"complaint-backend/internal/apperr"
	"complaint-backend/internal/models"
	"complaint-backend/internal/repository"
)

const recentComplaintLimit = 3

// Normalizer is the slice of the AI client the complaint workflow needs.
type Normalizer interface {
	Analyze(ctx context.Context, title, body, district string) (*models.NormalizationResult, error)
	FindSimilar(ctx context.Context, embedding []float64) ([]models.SimilarityCandidate, error)
}

// SubmitResult is what a successful intake returns to the caller: the stored
// complaint's identity and whatever similar complaints the AI service found.
type SubmitResult struct {
	ComplaintID int64                        `json:"complaint_id"`
	Similar     []models.SimilarityCandidate `json:"similar"`
}

type ComplaintService interface {
	Submit(ctx context.Context, applicant string, complaint *models.Complaint) (*SubmitResult, error)
	List(ctx context.Context, applicant, keyword string) ([]*models.Complaint, error)
	Recent(ctx context.Context, applicant string) ([]*models.Complaint, error)
}

type complaintService struct {
	repo      repository.ComplaintRepository
	ai        Normalizer
	aiTimeout time.Duration
	logger    *zap.Logger
}

func NewComplaintService(repo repository.ComplaintRepository, ai Normalizer, aiTimeout time.Duration, logger *zap.Logger) ComplaintService {
	return &complaintService{
		repo:      repo,
		ai:        ai,
		aiTimeout: aiTimeout,
		logger:    logger,
	}
}

// Submit runs the intake workflow: normalize through the AI service, persist
// the complaint, then look up similar complaints with the returned embedding.
// Normalization failure aborts the intake and nothing is stored. A similarity
// lookup failure is logged and swallowed so the submission still succeeds.
func (s *complaintService) Submit(ctx context.Context, applicant string, complaint *models.Complaint) (*SubmitResult, error) {
	if complaint.Title == "" || complaint.Body == "" || complaint.District == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "title, body and district are required")
	}

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	normalization, err := s.ai.Analyze(aiCtx, complaint.Title, complaint.Body, complaint.District)
	if err != nil {
		s.logger.Error("AI normalization failed", zap.String("applicant", applicant), zap.Error(err))
		return nil, err
	}

	complaint.Applicant = applicant
	complaint.ComplaintStatus = models.StatusOpen
	if complaint.ReceivedAt == nil {
		now := time.Now()
		complaint.ReceivedAt = &now
	}
	if err := s.repo.SaveComplaint(complaint); err != nil {
		s.logger.Error("Failed to save complaint", zap.String("applicant", applicant), zap.Error(err))
		return nil, fmt.Errorf("failed to save complaint: %w", err)
	}

	similar, err := s.ai.FindSimilar(aiCtx, normalization.Embedding)
	if err != nil {
		// The complaint is already stored; similarity info is best-effort.
		s.logger.Warn("Similarity lookup failed, continuing without candidates",
			zap.Int64("complaint_id", complaint.ID), zap.Error(err))
		similar = nil
	}

	for _, candidate := range similar {
		s.logger.Info("Similar complaint found",
			zap.Int64("complaint_id", complaint.ID),
			zap.Int64("candidate_id", candidate.ComplaintID),
			zap.Float64("sim_score", candidate.SimScore),
			zap.String("title", candidate.Title))
	}

	return &SubmitResult{ComplaintID: complaint.ID, Similar: similar}, nil
}

func (s *complaintService) List(ctx context.Context, applicant, keyword string) ([]*models.Complaint, error) {
	complaints, err := s.repo.GetAllByApplicant(applicant, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

func (s *complaintService) Recent(ctx context.Context, applicant string) ([]*models.Complaint, error) {
	complaints, err := s.repo.GetRecentByApplicant(applicant, recentComplaintLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent complaints: %w", err)
	}
	return complaints, nil
}
