package company

import (
	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/database/models"
	"gorm.io/gorm"
)

// seedCompanyFixtures creates the per-company reference records a fresh
// tenant starts with. Runs inside the company-creation transaction.
func seedCompanyFixtures(tx *gorm.DB, companyID, userID uuid.UUID) error {
	documentTypes := make([]models.DocumentType, 0, 4)
	for _, name := range []string{"CNPJ", "CPF", "RG", "E-MAIL"} {
		documentTypes = append(documentTypes, models.DocumentType{
			Name:        name,
			CompanyID:   companyID,
			CreatedByID: userID,
			UpdatedByID: userID,
		})
	}
	if err := tx.Create(&documentTypes).Error; err != nil {
		return err
	}

	serviceForms := make([]models.ServiceForm, 0, 3)
	for _, name := range []string{"Level 1 Support", "Level 2 Support", "Level 3 Support"} {
		serviceForms = append(serviceForms, models.ServiceForm{
			Name:        name,
			CompanyID:   companyID,
			CreatedByID: userID,
			UpdatedByID: userID,
		})
	}
	if err := tx.Create(&serviceForms).Error; err != nil {
		return err
	}

	ticketTypes := make([]models.TicketType, 0, 4)
	for _, name := range []string{"Question", "Suggestion", "Problem", "Service"} {
		ticketTypes = append(ticketTypes, models.TicketType{
			Name:        name,
			CompanyID:   companyID,
			Status:      models.CompanyStatusActive,
			CreatedByID: userID,
			UpdatedByID: userID,
		})
	}
	if err := tx.Create(&ticketTypes).Error; err != nil {
		return err
	}

	ticketStages := make([]models.TicketStage, 0, 4)
	for _, name := range []string{"Bot", "Open", "In progress", "Closed"} {
		ticketStages = append(ticketStages, models.TicketStage{
			Name:        name,
			CompanyID:   companyID,
			CreatedByID: userID,
			UpdatedByID: userID,
		})
	}
	if err := tx.Create(&ticketStages).Error; err != nil {
		return err
	}

	ticketStatuses := []models.TicketStatus{
		{Name: "Open", Kind: models.TicketStatusKindNew, CompanyID: companyID, CreatedByID: userID, UpdatedByID: userID},
		{Name: "In progress", Kind: models.TicketStatusKindPending, CompanyID: companyID, CreatedByID: userID, UpdatedByID: userID},
		{Name: "Closed", Kind: models.TicketStatusKindClosed, CompanyID: companyID, CreatedByID: userID, UpdatedByID: userID},
	}
	return tx.Create(&ticketStatuses).Error
}
