package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adota-pet/service-adoption/internal/domain"
	adopterDomain "github.com/adota-pet/service-adoption/internal/domain/adopter"
	adoptionDomain "github.com/adota-pet/service-adoption/internal/domain/adoption"
	petDomain "github.com/adota-pet/service-adoption/internal/domain/pet"
	"github.com/adota-pet/service-adoption/internal/events"
)

// EventPublisher publishes CloudEvents to the event broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event events.CloudEvent) error
}

// CreateRequestInput holds the adoption request form. Every contact
// field is required.
type CreateRequestInput struct {
	PetID        uuid.UUID `json:"pet_id" binding:"required"`
	AdopterName  string    `json:"adopter_name" binding:"required"`
	AdopterEmail string    `json:"adopter_email" binding:"required,email"`
	AdopterPhone string    `json:"adopter_phone" binding:"required"`
	Street       string    `json:"street" binding:"required"`
	Number       string    `json:"number" binding:"required"`
	Neighborhood string    `json:"neighborhood" binding:"required"`
	City         string    `json:"city" binding:"required"`
	State        string    `json:"state" binding:"required"`
}

// UpdateRequestStatusInput is the admin resolution body.
type UpdateRequestStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// RequestDTO is the API representation of an adoption request.
type RequestDTO struct {
	ID           uuid.UUID  `json:"id"`
	PetID        uuid.UUID  `json:"pet_id"`
	AdopterID    *uuid.UUID `json:"adopter_id,omitempty"`
	AdopterName  string     `json:"adopter_name"`
	AdopterEmail string     `json:"adopter_email"`
	AdopterPhone string     `json:"adopter_phone"`
	Street       string     `json:"street"`
	Number       string     `json:"number"`
	Neighborhood string     `json:"neighborhood"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Status       string     `json:"status"`
	Pet          *PetDTO    `json:"pet,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AdoptionDTO is the API representation of a finalized adoption.
type AdoptionDTO struct {
	ID        uuid.UUID   `json:"id"`
	PetID     uuid.UUID   `json:"pet_id"`
	AdopterID uuid.UUID   `json:"adopter_id"`
	Pet       *PetDTO     `json:"pet,omitempty"`
	Adopter   *AdopterDTO `json:"adopter,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// RequestStatsDTO holds request counts for the admin dashboard.
type RequestStatsDTO struct {
	TotalRequests int64            `json:"total_requests"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// AdoptionService orchestrates the adoption request lifecycle:
// submission, admin resolution, and the transactional finalization
// that turns an approval into an adoption.
type AdoptionService struct {
	tx        adoptionDomain.TxManager
	requests  adoptionDomain.RequestRepository
	adoptions adoptionDomain.AdoptionRepository
	pets      petDomain.Repository
	adopters  adopterDomain.Repository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewAdoptionService creates a new AdoptionService.
func NewAdoptionService(
	tx adoptionDomain.TxManager,
	requests adoptionDomain.RequestRepository,
	adoptions adoptionDomain.AdoptionRepository,
	pets petDomain.Repository,
	adopters adopterDomain.Repository,
	publisher EventPublisher,
	logger *zap.Logger,
) *AdoptionService {
	return &AdoptionService{
		tx:        tx,
		requests:  requests,
		adoptions: adoptions,
		pets:      pets,
		adopters:  adopters,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateRequest submits an adoption request for a pet on behalf of the
// authenticated user. The duplicate-pending guard and the insert run
// in one transaction so concurrent submissions cannot both pass the
// check.
func (s *AdoptionService) CreateRequest(ctx context.Context, requesterEmail string, input CreateRequestInput) (*RequestDTO, error) {
	if !strings.EqualFold(requesterEmail, input.AdopterEmail) {
		return nil, domain.NewForbiddenError("adoption requests must be submitted with your own account email")
	}

	var created *adoptionDomain.Request
	err := s.tx.WithinTx(ctx, func(repos adoptionDomain.TxRepos) error {
		p, err := repos.Pets.FindByID(ctx, input.PetID)
		if err != nil {
			return err
		}
		if !p.IsAvailable() {
			return domain.NewConflictError("this pet is not available for adoption")
		}

		pending, err := repos.Requests.ExistsPendingForPet(ctx, input.PetID)
		if err != nil {
			return err
		}
		if pending {
			return domain.NewConflictError("a pending adoption request already exists for this pet")
		}

		contact := adoptionDomain.ContactInfo{
			Name:         input.AdopterName,
			Email:        input.AdopterEmail,
			Phone:        input.AdopterPhone,
			Street:       input.Street,
			Number:       input.Number,
			Neighborhood: input.Neighborhood,
			City:         input.City,
			State:        input.State,
		}

		adopterID, err := s.findOrCreateAdopter(ctx, repos, contact)
		if err != nil {
			return err
		}

		created, err = adoptionDomain.NewRequest(input.PetID, &adopterID, contact)
		if err != nil {
			return err
		}
		return repos.Requests.Save(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("adoption request created",
		zap.String("request_id", created.ID().String()),
		zap.String("pet_id", created.PetID().String()),
	)
	s.publish(ctx, events.AdoptionRequestCreated, created.ID().String(), events.RequestCreatedEvent{
		RequestID:    created.ID(),
		PetID:        created.PetID(),
		AdopterEmail: created.Contact().Email,
		OccurredAt:   time.Now().UTC(),
	})

	result := toRequestDTO(created, nil)
	return &result, nil
}

// UpdateRequestStatus resolves a PENDING request. DENIED is a plain
// field update; APPROVED runs the finalization protocol atomically:
// find-or-create the adopter, insert the adoption, mark the pet
// adopted, and flip the request status. Any failure rolls the whole
// transaction back and the request stays PENDING.
func (s *AdoptionService) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status string) (*RequestDTO, error) {
	target := adoptionDomain.RequestStatus(status)
	if target != adoptionDomain.StatusApproved && target != adoptionDomain.StatusDenied {
		return nil, domain.NewValidationError("status must be APPROVED or DENIED")
	}

	var (
		updated    *adoptionDomain.Request
		adoptionID uuid.UUID
		adopterID  uuid.UUID
	)
	err := s.tx.WithinTx(ctx, func(repos adoptionDomain.TxRepos) error {
		req, err := repos.Requests.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Status().IsTerminal() {
			return domain.NewInvalidStateError(string(req.Status()), string(target))
		}

		if target == adoptionDomain.StatusDenied {
			if err := req.Deny(); err != nil {
				return err
			}
			if err := repos.Requests.Update(ctx, req); err != nil {
				return err
			}
			updated = req
			return nil
		}

		aID, err := s.findOrCreateAdopter(ctx, repos, req.Contact())
		if err != nil {
			return err
		}

		adoptionRec, err := adoptionDomain.NewAdoption(req.PetID(), aID)
		if err != nil {
			return err
		}
		if err := repos.Adoptions.Save(ctx, adoptionRec); err != nil {
			return err
		}
		// Conditional flip: fails if the pet is no longer available,
		// which aborts the transaction and erases the adoption insert.
		// This is what keeps two concurrent approvals for the same pet
		// from both committing.
		if err := repos.Pets.MarkAdopted(ctx, req.PetID()); err != nil {
			return err
		}

		if err := req.Approve(aID); err != nil {
			return err
		}
		if err := repos.Requests.Update(ctx, req); err != nil {
			return err
		}

		updated = req
		adoptionID = adoptionRec.ID()
		adopterID = aID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if target == adoptionDomain.StatusApproved {
		s.logger.Info("adoption request approved",
			zap.String("request_id", updated.ID().String()),
			zap.String("pet_id", updated.PetID().String()),
			zap.String("adoption_id", adoptionID.String()),
		)
		s.publish(ctx, events.AdoptionRequestApproved, updated.ID().String(), events.RequestApprovedEvent{
			RequestID:  updated.ID(),
			PetID:      updated.PetID(),
			AdopterID:  adopterID,
			AdoptionID: adoptionID,
			OccurredAt: time.Now().UTC(),
		})
	} else {
		s.logger.Info("adoption request denied",
			zap.String("request_id", updated.ID().String()),
		)
		s.publish(ctx, events.AdoptionRequestDenied, updated.ID().String(), events.RequestDeniedEvent{
			RequestID:  updated.ID(),
			PetID:      updated.PetID(),
			OccurredAt: time.Now().UTC(),
		})
	}

	result := toRequestDTO(updated, nil)
	return &result, nil
}

// ListRequests returns all requests newest-first, each with its
// related pet (admin).
func (s *AdoptionService) ListRequests(ctx context.Context, page, limit int) (*domain.PaginatedResult[RequestDTO], error) {
	requests, total, err := s.requests.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	petIDs := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		petIDs = append(petIDs, req.PetID())
	}
	pets, err := s.pets.FindByIDs(ctx, petIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]RequestDTO, len(requests))
	for i, req := range requests {
		var petDTO *PetDTO
		if p, ok := pets[req.PetID()]; ok {
			d := toPetDTO(p)
			petDTO = &d
		}
		dtos[i] = toRequestDTO(req, petDTO)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetRequestStats returns request counts grouped by status (admin).
func (s *AdoptionService) GetRequestStats(ctx context.Context) (*RequestStatsDTO, error) {
	counts, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &RequestStatsDTO{TotalRequests: total, ByStatus: counts}, nil
}

// ListAdoptions returns the adoption history with related pet and
// adopter (admin).
func (s *AdoptionService) ListAdoptions(ctx context.Context) ([]AdoptionDTO, error) {
	adoptions, err := s.adoptions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	petIDs := make([]uuid.UUID, 0, len(adoptions))
	adopterIDs := make([]uuid.UUID, 0, len(adoptions))
	for _, a := range adoptions {
		petIDs = append(petIDs, a.PetID())
		adopterIDs = append(adopterIDs, a.AdopterID())
	}

	pets, err := s.pets.FindByIDs(ctx, petIDs)
	if err != nil {
		return nil, err
	}
	adopters, err := s.adopters.FindByIDs(ctx, adopterIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]AdoptionDTO, len(adoptions))
	for i, a := range adoptions {
		dtos[i] = toAdoptionDTO(a, pets[a.PetID()], adopters[a.AdopterID()])
	}
	return dtos, nil
}

// GetAdoption returns a single adoption with related pet and adopter.
func (s *AdoptionService) GetAdoption(ctx context.Context, id uuid.UUID) (*AdoptionDTO, error) {
	a, err := s.adoptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pets, err := s.pets.FindByIDs(ctx, []uuid.UUID{a.PetID()})
	if err != nil {
		return nil, err
	}
	adopters, err := s.adopters.FindByIDs(ctx, []uuid.UUID{a.AdopterID()})
	if err != nil {
		return nil, err
	}

	result := toAdoptionDTO(a, pets[a.PetID()], adopters[a.AdopterID()])
	return &result, nil
}

// --- Helpers ---

// findOrCreateAdopter resolves an adopter profile by the contact's
// email, creating one from the contact snapshot when absent.
func (s *AdoptionService) findOrCreateAdopter(ctx context.Context, repos adoptionDomain.TxRepos, contact adoptionDomain.ContactInfo) (uuid.UUID, error) {
	existing, err := repos.Adopters.FindByEmail(ctx, contact.Email)
	if err == nil {
		return existing.ID(), nil
	}
	if !domain.IsNotFound(err) {
		return uuid.Nil, err
	}

	created, err := adopterDomain.NewAdopter(contact.Name, contact.Email, contact.Phone, contact.ComposedAddress())
	if err != nil {
		return uuid.Nil, err
	}
	if err := repos.Adopters.Save(ctx, created); err != nil {
		return uuid.Nil, err
	}
	return created.ID(), nil
}

func (s *AdoptionService) publish(ctx context.Context, eventType, key string, data interface{}) {
	if s.publisher == nil {
		return
	}
	ce, err := events.NewCloudEvent("service-adoption", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.publisher.PublishEvent(ctx, events.TopicAdoptionEvents, key, ce); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toRequestDTO(req *adoptionDomain.Request, petDTO *PetDTO) RequestDTO {
	c := req.Contact()
	return RequestDTO{
		ID:           req.ID(),
		PetID:        req.PetID(),
		AdopterID:    req.AdopterID(),
		AdopterName:  c.Name,
		AdopterEmail: c.Email,
		AdopterPhone: c.Phone,
		Street:       c.Street,
		Number:       c.Number,
		Neighborhood: c.Neighborhood,
		City:         c.City,
		State:        c.State,
		Status:       string(req.Status()),
		Pet:          petDTO,
		CreatedAt:    req.CreatedAt(),
		UpdatedAt:    req.UpdatedAt(),
	}
}

func toAdoptionDTO(a *adoptionDomain.Adoption, p *petDomain.Pet, ad *adopterDomain.Adopter) AdoptionDTO {
	dto := AdoptionDTO{
		ID:        a.ID(),
		PetID:     a.PetID(),
		AdopterID: a.AdopterID(),
		CreatedAt: a.CreatedAt(),
	}
	if p != nil {
		d := toPetDTO(p)
		dto.Pet = &d
	}
	if ad != nil {
		d := toAdopterDTO(ad)
		dto.Adopter = &d
	}
	return dto
}
