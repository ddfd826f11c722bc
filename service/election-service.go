package service

import (
	"candideit/app_error"
	"candideit/config"
	"candideit/events"
	"candideit/filestorage"
	"candideit/logging"
	"candideit/metrics"
	"candideit/repository"
	"candideit/utils"
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"
)

const duplicateElectionMessage = "Ya tienes una eleccion con ese nombre."

type ElectionInput struct {
	Name              string
	Slug              string
	Description       string
	Date              string
	InformationSource string
	Logo              *multipart.FileHeader
}

type ElectionService struct {
	electionRepository  *repository.ElectionRepository
	candidateRepository *repository.CandidateRepository
	storage             filestorage.FileStorage
	publisher           events.Publisher
	maxUploadBytes      int64
}

func NewElectionService(db *gorm.DB, storage filestorage.FileStorage, publisher events.Publisher) *ElectionService {
	return &ElectionService{
		electionRepository:  repository.NewElectionRepository(db),
		candidateRepository: repository.NewCandidateRepository(db),
		storage:             storage,
		publisher:           publisher,
		maxUploadBytes:      config.Env().MaxUploadBytes,
	}
}

// Create persists a new election for owner together with its default data.
// A slug already used by the owner is reported as a form error on name.
func (s *ElectionService) Create(ctx context.Context, owner *repository.User, input *ElectionInput) (*repository.Election, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, app_error.Validation("name", requiredMessage)
	}
	slug := utils.Slugify(input.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return nil, app_error.Validation("slug", "Introduce un slug válido.")
	}
	exists, err := s.electionRepository.ExistsForOwner(owner.ID, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.DuplicateSlugCounter.Inc()
		return nil, app_error.WrapValidation(app_error.ErrDuplicateSlugForOwner, "name", duplicateElectionMessage)
	}
	logo, err := storeAsset(ctx, s.storage, filestorage.KindLogo, "logo", input.Logo, s.maxUploadBytes)
	if err != nil {
		return nil, err
	}
	election, err := s.electionRepository.Create(&repository.Election{
		Name:              name,
		Slug:              slug,
		OwnerID:           owner.ID,
		Description:       input.Description,
		Date:              input.Date,
		Logo:              logo,
		InformationSource: input.InformationSource,
	})
	if err != nil {
		discardAsset(ctx, s.storage, logo)
		if errors.Is(err, app_error.ErrDuplicateSlugForOwner) {
			metrics.DuplicateSlugCounter.Inc()
			return nil, app_error.WrapValidation(err, "name", duplicateElectionMessage)
		}
		return nil, err
	}
	election.Owner = owner
	metrics.ElectionsCreatedCounter.Inc()
	logging.Log.Infof("ELECTION: %s created %s", owner.Username, election.Slug)
	events.Emit(ctx, s.publisher, &events.Event{Type: events.ElectionCreated, Owner: owner.Username, Election: election.Slug})
	return election, nil
}

// Update changes the editable fields of an election owned by owner. The
// previous logo is removed once a replacement has been stored.
func (s *ElectionService) Update(ctx context.Context, owner *repository.User, slug string, input *ElectionInput) (*repository.Election, error) {
	election, err := s.GetElectionForOwner(owner.ID, slug)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return election, app_error.Validation("name", requiredMessage)
	}
	logo, err := storeAsset(ctx, s.storage, filestorage.KindLogo, "logo", input.Logo, s.maxUploadBytes)
	if err != nil {
		return election, err
	}
	previousLogo := election.Logo
	election.Name = name
	election.Description = input.Description
	election.InformationSource = input.InformationSource
	if logo != "" {
		election.Logo = logo
	}
	if _, err := s.electionRepository.Update(election); err != nil {
		discardAsset(ctx, s.storage, logo)
		return nil, err
	}
	if logo != "" && previousLogo != "" {
		discardAsset(ctx, s.storage, previousLogo)
	}
	election.Owner = owner
	logging.Log.Infof("ELECTION: %s updated %s", owner.Username, election.Slug)
	events.Emit(ctx, s.publisher, &events.Event{Type: events.ElectionUpdated, Owner: owner.Username, Election: election.Slug})
	return election, nil
}

// GetElectionForOwner never distinguishes a foreign election from a missing one.
func (s *ElectionService) GetElectionForOwner(ownerId uint, slug string, preloads ...string) (*repository.Election, error) {
	election, err := s.electionRepository.GetElectionForOwner(ownerId, slug, preloads...)
	return election, notFound(err, "election")
}

func (s *ElectionService) GetElection(username string, slug string, preloads ...string) (*repository.Election, error) {
	election, err := s.electionRepository.GetElectionByUsernameAndSlug(username, slug, append([]string{"Owner"}, preloads...)...)
	return election, notFound(err, "election")
}

// GetAdminElection resolves /{username}/{slug} only for its owner.
func (s *ElectionService) GetAdminElection(user *repository.User, username string, slug string, preloads ...string) (*repository.Election, error) {
	if user == nil || user.Username != username {
		return nil, app_error.NotFound("election")
	}
	election, err := s.GetElectionForOwner(user.ID, slug, preloads...)
	if err != nil {
		return nil, err
	}
	election.Owner = user
	return election, nil
}

// Landing returns the election a user should continue working on and its
// first candidate. Both are nil when the user has no elections; the
// candidate is nil when the election has none yet.
func (s *ElectionService) Landing(user *repository.User) (*repository.Election, *repository.Candidate, error) {
	election, err := s.electionRepository.GetLatestElectionForOwner(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	candidate, err := s.candidateRepository.GetFirstCandidate(election.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return election, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return election, candidate, nil
}

func (s *ElectionService) GetElectionsForOwner(ownerId uint) ([]*repository.Election, error) {
	return s.electionRepository.GetElectionsForOwner(ownerId)
}

func (s *ElectionService) LogoURL(election *repository.Election) string {
	return assetURL(s.storage, election.Logo)
}
