package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"complaint-backend/internal/models"
)

const complaintColumns = `id, applicant, received_at, title, body, answered_by, answer,
	address_text, lat, lon, district, complaint_status, urgency_level,
	current_department_id, incident_id, incident_linked_at, incident_link_score,
	created_at, updated_at, closed_at`

type ComplaintRepository interface {
	SaveComplaint(complaint *models.Complaint) error
	GetAllByApplicant(applicant, keyword string) ([]*models.Complaint, error)
	GetRecentByApplicant(applicant string, limit int) ([]*models.Complaint, error)
}

type complaintRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewComplaintRepository(db *sqlx.DB, logger *zap.Logger) ComplaintRepository {
	return &complaintRepository{db: db, logger: logger}
}

func (r *complaintRepository) SaveComplaint(c *models.Complaint) error {
	query := `INSERT INTO complaints (applicant, received_at, title, body, answered_by, answer,
	                                  address_text, lat, lon, district, complaint_status, urgency_level,
	                                  current_department_id, incident_id, incident_linked_at, incident_link_score, closed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(query, c.Applicant, c.ReceivedAt, c.Title, c.Body, c.AnsweredBy, c.Answer,
		c.AddressText, c.Lat, c.Lon, c.District, c.ComplaintStatus, c.UrgencyLevel,
		c.CurrentDepartmentID, c.IncidentID, c.IncidentLinkedAt, c.IncidentLinkScore, c.ClosedAt).StructScan(c)
}

// GetAllByApplicant returns the applicant's complaints, newest first. A
// non-empty keyword filters case-insensitively over title and body. An unknown
// applicant simply has no complaints.
func (r *complaintRepository) GetAllByApplicant(applicant, keyword string) ([]*models.Complaint, error) {
	complaints := []*models.Complaint{}

	if keyword == "" {
		query := `SELECT ` + complaintColumns + ` FROM complaints WHERE applicant = $1 ORDER BY created_at DESC`
		if err := r.db.Select(&complaints, query, applicant); err != nil {
			return nil, err
		}
		return complaints, nil
	}

	query := `SELECT ` + complaintColumns + ` FROM complaints
	          WHERE applicant = $1 AND (title ILIKE '%' || $2 || '%' OR body ILIKE '%' || $2 || '%')
	          ORDER BY created_at DESC`
	if err := r.db.Select(&complaints, query, applicant, keyword); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) GetRecentByApplicant(applicant string, limit int) ([]*models.Complaint, error) {
	complaints := []*models.Complaint{}
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE applicant = $1 ORDER BY created_at DESC LIMIT $2`
	if err := r.db.Select(&complaints, query, applicant, limit); err != nil {
		return nil, err
	}
	return complaints, nil
}
