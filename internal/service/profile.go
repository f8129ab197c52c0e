package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/privacy"
	"github.com/socialite-app/backend/internal/types"
)

// ProfileService assembles viewer-scoped profile views and runs all profile
// mutations (profile patch, education, work experience, life events, photo
// uploads).
type ProfileService struct {
	db         *gorm.DB
	storage    FileStorage
	follows    FollowGraph
	privacySvc *PrivacyService
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, storage FileStorage, follows FollowGraph, privacySvc *PrivacyService) *ProfileService {
	return &ProfileService{
		db:         db,
		storage:    storage,
		follows:    follows,
		privacySvc: privacySvc,
	}
}

// GetProfile builds the composite profile view for viewerID looking at the
// user behind username. The result is specific to this viewer and must not
// be cached for anyone else.
func (s *ProfileService) GetProfile(ctx context.Context, username string, viewerID uuid.UUID) (*types.ProfileView, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	isOwn := user.ID == viewerID

	profile, err := s.loadProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	settings, err := s.privacySvc.Snapshot(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// A fully private profile blocks the whole read for everyone but the
	// owner. Section filtering below degrades gracefully instead.
	if !isOwn && settings.ProfileVisibility == privacy.VisibilityOnlyMe {
		return nil, ErrPrivateProfile
	}

	connected := false
	if !isOwn && viewerID != uuid.Nil {
		connected, err = s.connectionState(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	view := &types.ProfileView{
		UserID:       user.ID.String(),
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Avatar:       user.Avatar,
		Bio:          user.Bio,
		IsOwnProfile: isOwn,
		IsConnected:  connected,
	}

	followers, following, err := s.follows.Counts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	view.FollowerCount = followers
	view.FollowingCount = following

	viewer := viewerID.String()
	if viewerID == uuid.Nil {
		viewer = ""
	}
	owner := user.ID.String()

	if profile != nil {
		view.CoverPhoto = profile.CoverPhoto

		basic := settings.SectionLevel(privacy.SectionBasicInfo)
		view.BirthDate = privacy.Filter(profile.BirthDate, basic, viewer, owner, connected)
		view.Gender = privacy.Filter(profile.Gender, basic, viewer, owner, connected)
		view.CurrentCity = privacy.Filter(profile.CurrentCity, basic, viewer, owner, connected)
		view.Hometown = privacy.Filter(profile.Hometown, basic, viewer, owner, connected)
		view.PlacesLived = privacy.Filter([]string(profile.PlacesLived), basic, viewer, owner, connected)

		relationships := settings.SectionLevel(privacy.SectionRelationships)
		view.RelationshipStatus = privacy.Filter(profile.RelationshipStatus, relationships, viewer, owner, connected)

		contact := settings.SectionLevel(privacy.SectionContactInfo)
		view.PhoneNumber = privacy.Filter(profile.PhoneNumber, contact, viewer, owner, connected)
		view.Website = privacy.Filter(profile.Website, contact, viewer, owner, connected)
		view.AlternativeEmail = privacy.Filter(profile.AlternativeEmail, contact, viewer, owner, connected)

		interests := settings.SectionLevel(privacy.SectionInterests)
		view.Interests = privacy.Filter([]string(profile.Interests), interests, viewer, owner, connected)
		view.Music = privacy.Filter([]string(profile.Music), interests, viewer, owner, connected)
		view.Movies = privacy.Filter([]string(profile.Movies), interests, viewer, owner, connected)
		view.Books = privacy.Filter([]string(profile.Books), interests, viewer, owner, connected)
		view.Sports = privacy.Filter([]string(profile.Sports), interests, viewer, owner, connected)

		if privacy.CanView(settings.SectionLevel(privacy.SectionLifeEvents), viewer, owner, connected) {
			for _, event := range profile.LifeEvents {
				if !privacy.CanView(event.Visibility, viewer, owner, connected) {
					continue
				}
				view.LifeEvents = append(view.LifeEvents, types.NewLifeEventView(event))
			}
		}
	}

	if privacy.CanView(settings.SectionLevel(privacy.SectionEducation), viewer, owner, connected) {
		var educations []models.Education
		if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).Order("start_date DESC").Find(&educations).Error; err != nil {
			return nil, fmt.Errorf("failed to load education: %w", err)
		}
		for _, e := range educations {
			if !privacy.CanView(e.Visibility, viewer, owner, connected) {
				continue
			}
			view.Education = append(view.Education, types.NewEducationView(e))
		}
	}

	if privacy.CanView(settings.SectionLevel(privacy.SectionWorkExperience), viewer, owner, connected) {
		var work []models.WorkExperience
		if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).Order("start_date DESC").Find(&work).Error; err != nil {
			return nil, fmt.Errorf("failed to load work experience: %w", err)
		}
		for _, w := range work {
			if !privacy.CanView(w.Visibility, viewer, owner, connected) {
				continue
			}
			view.WorkExperience = append(view.WorkExperience, types.NewWorkExperienceView(w))
		}
	}

	return view, nil
}

// connectionState combines the follow predicate with the block relation: a
// block in either direction severs the connection for visibility purposes.
func (s *ProfileService) connectionState(ctx context.Context, viewerID, ownerID uuid.UUID) (bool, error) {
	connected, err := s.follows.IsConnected(ctx, viewerID, ownerID)
	if err != nil {
		return false, err
	}
	if !connected {
		return false, nil
	}
	if blocked, err := s.privacySvc.IsBlocked(ctx, ownerID, viewerID); err != nil {
		return false, err
	} else if blocked {
		return false, nil
	}
	if blocked, err := s.privacySvc.IsBlocked(ctx, viewerID, ownerID); err != nil {
		return false, err
	} else if blocked {
		return false, nil
	}
	return true, nil
}

// UpdateProfile applies the non-nil fields of the patch to the user's
// profile, creating the record on first write.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("bio", *req.Bio).Error; err != nil {
			return nil, fmt.Errorf("failed to update bio: %w", err)
		}
	}
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.RelationshipStatus != nil {
		profile.RelationshipStatus = *req.RelationshipStatus
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.AlternativeEmail != nil {
		profile.AlternativeEmail = *req.AlternativeEmail
	}
	if req.CurrentCity != nil {
		profile.CurrentCity = *req.CurrentCity
	}
	if req.Hometown != nil {
		profile.Hometown = *req.Hometown
	}
	if req.PlacesLived != nil {
		profile.PlacesLived = req.PlacesLived
	}
	if req.Interests != nil {
		profile.Interests = req.Interests
	}
	if req.Music != nil {
		profile.Music = req.Music
	}
	if req.Movies != nil {
		profile.Movies = req.Movies
	}
	if req.Books != nil {
		profile.Books = req.Books
	}
	if req.Sports != nil {
		profile.Sports = req.Sports
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// UploadAvatar stores the image and records its path on the user.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, filename string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	name := fmt.Sprintf("avatar_%s_%s%s", userID, uuid.New(), filepath.Ext(filename))
	path, err := s.storage.Store(ctx, data, "avatars", name)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	old := user.Avatar
	if err := s.db.WithContext(ctx).Model(&user).Update("avatar", path).Error; err != nil {
		return "", fmt.Errorf("failed to update avatar: %w", err)
	}
	s.deleteSuperseded(ctx, old, path)
	return path, nil
}

// UploadCoverPhoto stores the image and records its path on the profile,
// creating the profile on first write.
func (s *ProfileService) UploadCoverPhoto(ctx context.Context, userID uuid.UUID, data []byte, filename string) (string, error) {
	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("cover_%s_%s%s", userID, uuid.New(), filepath.Ext(filename))
	path, err := s.storage.Store(ctx, data, "covers", name)
	if err != nil {
		return "", fmt.Errorf("failed to store cover photo: %w", err)
	}

	old := profile.CoverPhoto
	profile.CoverPhoto = path
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return "", fmt.Errorf("failed to update cover photo: %w", err)
	}
	s.deleteSuperseded(ctx, old, path)
	return path, nil
}

// deleteSuperseded removes the previous object once a replacement is
// persisted. Best effort: a storage failure leaves an orphaned object, never
// a broken record.
func (s *ProfileService) deleteSuperseded(ctx context.Context, old, current string) {
	if old == "" || old == current {
		return
	}
	if err := s.storage.Delete(ctx, old); err != nil {
		log.Printf("[ProfileService] failed to delete superseded object %s: %v", old, err)
	}
}

// AddEducation creates a new education entry owned by userID. Visibility
// defaults to FRIENDS when the request leaves it empty.
func (s *ProfileService) AddEducation(ctx context.Context, userID uuid.UUID, req *types.EducationRequest) (*models.Education, error) {
	visibility, err := resolveEntryVisibility(req.Visibility)
	if err != nil {
		return nil, err
	}

	entry := models.Education{
		ID:           uuid.New(),
		UserID:       userID,
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Current:      req.Current,
		Description:  req.Description,
		Visibility:   visibility,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create education: %w", err)
	}
	return &entry, nil
}

// UpdateEducation mutates an entry after verifying the requester owns it.
func (s *ProfileService) UpdateEducation(ctx context.Context, userID, entryID uuid.UUID, req *types.EducationRequest) (*models.Education, error) {
	var entry models.Education
	if err := s.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to load education: %w", err)
	}
	if entry.UserID != userID {
		return nil, ErrPermissionDenied
	}

	if req.Visibility != "" {
		if !privacy.Visibility(req.Visibility).Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVisibility, req.Visibility)
		}
		entry.Visibility = privacy.Visibility(req.Visibility)
	}
	entry.Institution = req.Institution
	entry.Degree = req.Degree
	entry.FieldOfStudy = req.FieldOfStudy
	entry.StartDate = req.StartDate
	entry.EndDate = req.EndDate
	entry.Current = req.Current
	entry.Description = req.Description

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to save education: %w", err)
	}
	return &entry, nil
}

// DeleteEducation removes an entry after verifying ownership.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID, entryID uuid.UUID) error {
	var entry models.Education
	if err := s.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to load education: %w", err)
	}
	if entry.UserID != userID {
		return ErrPermissionDenied
	}
	if err := s.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return fmt.Errorf("failed to delete education: %w", err)
	}
	return nil
}

// AddWorkExperience creates a new work entry owned by userID.
func (s *ProfileService) AddWorkExperience(ctx context.Context, userID uuid.UUID, req *types.WorkExperienceRequest) (*models.WorkExperience, error) {
	visibility, err := resolveEntryVisibility(req.Visibility)
	if err != nil {
		return nil, err
	}

	entry := models.WorkExperience{
		ID:          uuid.New(),
		UserID:      userID,
		Company:     req.Company,
		Position:    req.Position,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Current:     req.Current,
		Description: req.Description,
		Visibility:  visibility,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create work experience: %w", err)
	}
	return &entry, nil
}

// UpdateWorkExperience mutates an entry after verifying ownership.
func (s *ProfileService) UpdateWorkExperience(ctx context.Context, userID, entryID uuid.UUID, req *types.WorkExperienceRequest) (*models.WorkExperience, error) {
	var entry models.WorkExperience
	if err := s.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to load work experience: %w", err)
	}
	if entry.UserID != userID {
		return nil, ErrPermissionDenied
	}

	if req.Visibility != "" {
		if !privacy.Visibility(req.Visibility).Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVisibility, req.Visibility)
		}
		entry.Visibility = privacy.Visibility(req.Visibility)
	}
	entry.Company = req.Company
	entry.Position = req.Position
	entry.Location = req.Location
	entry.StartDate = req.StartDate
	entry.EndDate = req.EndDate
	entry.Current = req.Current
	entry.Description = req.Description

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to save work experience: %w", err)
	}
	return &entry, nil
}

// DeleteWorkExperience removes an entry after verifying ownership.
func (s *ProfileService) DeleteWorkExperience(ctx context.Context, userID, entryID uuid.UUID) error {
	var entry models.WorkExperience
	if err := s.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to load work experience: %w", err)
	}
	if entry.UserID != userID {
		return ErrPermissionDenied
	}
	if err := s.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return fmt.Errorf("failed to delete work experience: %w", err)
	}
	return nil
}

// AddLifeEvent appends an event to the owner's profile. The generated id is
// immutable.
func (s *ProfileService) AddLifeEvent(ctx context.Context, userID uuid.UUID, req *types.LifeEventRequest) (*models.LifeEvent, error) {
	visibility, err := resolveEntryVisibility(req.Visibility)
	if err != nil {
		return nil, err
	}

	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	event := models.LifeEvent{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
		Visibility:  visibility,
	}
	profile.LifeEvents = append(profile.LifeEvents, event)

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save life event: %w", err)
	}
	return &event, nil
}

// DeleteLifeEvent removes the event with the given id from the owner's
// profile.
func (s *ProfileService) DeleteLifeEvent(ctx context.Context, userID uuid.UUID, eventID string) error {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrProfileNotFound
	}

	kept := profile.LifeEvents[:0]
	removed := false
	for _, event := range profile.LifeEvents {
		if event.ID == eventID {
			removed = true
			continue
		}
		kept = append(kept, event)
	}
	if !removed {
		return ErrLifeEventNotFound
	}
	profile.LifeEvents = kept

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// loadProfile returns the user's profile or nil when none exists yet. If a
// legacy duplicate ever survived a migration, the oldest record wins.
func (s *ProfileService) loadProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// getOrCreateProfile serializes concurrent first writes on the user_id
// unique index; the loser retries as a lookup.
func (s *ProfileService) getOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	fresh := models.Profile{
		ID:     uuid.New(),
		UserID: userID,
	}
	if createErr := s.db.WithContext(ctx).Create(&fresh).Error; createErr != nil {
		if existing, lookupErr := s.loadProfile(ctx, userID); lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create profile: %w", createErr)
	}
	return &fresh, nil
}

func resolveEntryVisibility(value string) (privacy.Visibility, error) {
	if value == "" {
		return privacy.VisibilityFriends, nil
	}
	v := privacy.Visibility(value)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVisibility, value)
	}
	return v, nil
}
