package draft

import (
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/view"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// PhotoStore keeps uploaded previews on disk.
type PhotoStore interface {
	SaveUploadedFile(fileHeader *multipart.FileHeader, subDir string) (string, error)
	PublicURL(relativePath string) string
	DeleteFile(relativePath string) error
	DeleteDir(subDir string) error
}

type photo struct {
	url    string
	stored string // relative path when the preview lives in PhotoStore
}

// Draft is the server-held state of one listing creation page. Nothing is
// persisted; closing the draft discards it along with its previews.
type Draft struct {
	mu sync.Mutex

	id      string
	scope   *view.Scope
	store   PhotoStore
	delay   time.Duration
	logger  *zap.Logger
	dirName string

	stage      Stage
	details    *Details
	photos     []photo
	publishing bool
	published  bool
	reference  string
}

func newDraft(id string, scope *view.Scope, store PhotoStore, delay time.Duration, logger *zap.Logger) *Draft {
	return &Draft{
		id:      id,
		scope:   scope,
		store:   store,
		delay:   delay,
		logger:  logger,
		dirName: "drafts/" + id,
		stage:   StageDetails,
	}
}

// Close implements view.Closer by deleting the draft's previews.
func (d *Draft) Close() {
	d.mu.Lock()
	hasUploads := false
	for _, p := range d.photos {
		if p.stored != "" {
			hasUploads = true
			break
		}
	}
	d.photos = nil
	d.mu.Unlock()

	if hasUploads {
		if err := d.store.DeleteDir(d.dirName); err != nil {
			d.logger.Warn("Failed to delete draft previews", zap.String("draftID", d.id), zap.Error(err))
		}
	}
}

// State returns a snapshot for rendering.
func (d *Draft) State() *DraftState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

func (d *Draft) stateLocked() *DraftState {
	st := &DraftState{
		ID:         d.id,
		Stage:      d.stage,
		StageName:  d.stage.String(),
		Photos:     make([]string, 0, len(d.photos)),
		Publishing: d.publishing,
		Published:  d.published,
		Reference:  d.reference,
	}
	if d.details != nil {
		cp := *d.details
		if cp.Mileage != nil {
			m := *cp.Mileage
			cp.Mileage = &m
		}
		st.Details = &cp
	}
	for _, p := range d.photos {
		st.Photos = append(st.Photos, p.url)
	}
	if len(st.Photos) > 0 {
		st.CoverImage = st.Photos[0]
	}

	switch d.stage {
	case StageDetails:
		st.Conditions = domain.Conditions
		st.CanAdvance = d.details != nil
	case StagePhotos:
		st.CanAdvance = len(d.photos) > 0
		st.Message = "Add at least 3 photos to get better visibility. First photo will be the cover."
	case StageReview:
		st.Summary = d.summaryLocked()
		st.Message = "Your listing looks great. It will be visible to thousands of buyers instantly."
	}
	if d.published {
		st.Redirect = domain.RouteSellerDashboard
		st.Message = "Your listing has been published."
	}
	return st
}

func (d *Draft) summaryLocked() *Summary {
	if d.details == nil {
		return nil
	}
	car := listing.Car{Make: d.details.Make, Model: d.details.Model, Year: d.details.Year}
	sum := &Summary{
		Title:        car.Title(),
		PriceDisplay: listing.FormatPrice(d.details.Price),
		Condition:    d.details.Condition,
		Location:     d.details.Location,
		PhotoCount:   len(d.photos),
	}
	if d.details.Mileage != nil {
		sum.MileageDisplay = listing.FormatMileage(*d.details.Mileage)
	}
	if len(d.photos) > 0 {
		sum.CoverImage = d.photos[0].url
	}
	return sum
}

func (d *Draft) editableLocked(stage Stage) error {
	if d.publishing || d.published {
		return common.ErrConflict.WithDetails("This listing has already been submitted.")
	}
	if d.stage != stage {
		return common.ErrConflict.WithDetails(fmt.Sprintf("This action is only available on the %s stage.", stage))
	}
	return nil
}

// SaveDetails stores the details form. It does not advance the stage.
func (d *Draft) SaveDetails(in Details) (*DraftState, error) {
	details, err := normalizeDetails(in, d.scope.Now())
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.editableLocked(StageDetails); err != nil {
		return nil, err
	}
	d.details = &details
	return d.stateLocked(), nil
}

// Next moves one stage forward. Details must be saved to leave the details
// stage and at least one photo is needed to leave the photos stage.
func (d *Draft) Next() (*DraftState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.publishing || d.published {
		return nil, common.ErrConflict.WithDetails("This listing has already been submitted.")
	}
	switch d.stage {
	case StageDetails:
		if d.details == nil {
			return nil, common.ErrUnprocessableEntity.WithDetails("Fill in the car details before continuing.")
		}
	case StagePhotos:
		if len(d.photos) == 0 {
			return nil, common.ErrUnprocessableEntity.WithDetails("Add at least one photo before continuing.")
		}
	default:
		return nil, common.ErrConflict.WithDetails("Already at the last stage.")
	}
	d.stage++
	return d.stateLocked(), nil
}

// Back moves one stage backward, keeping everything entered.
func (d *Draft) Back() (*DraftState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.publishing || d.published {
		return nil, common.ErrConflict.WithDetails("This listing has already been submitted.")
	}
	if d.stage == StageDetails {
		return nil, common.ErrConflict.WithDetails("Already at the first stage.")
	}
	d.stage--
	return d.stateLocked(), nil
}

// AddPhotoURL appends a photo that is already hosted somewhere.
func (d *Draft) AddPhotoURL(url string) (*DraftState, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, common.NewValidationAPIError(map[string]string{"URL": "The url field is required."})
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.editableLocked(StagePhotos); err != nil {
		return nil, err
	}
	d.photos = append(d.photos, photo{url: url})
	return d.stateLocked(), nil
}

// UploadPhoto stores an uploaded image as a preview and appends it.
func (d *Draft) UploadPhoto(fh *multipart.FileHeader) (*DraftState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.editableLocked(StagePhotos); err != nil {
		return nil, err
	}
	rel, err := d.store.SaveUploadedFile(fh, d.dirName)
	if err != nil {
		d.logger.Debug("Preview upload rejected", zap.String("draftID", d.id), zap.Error(err))
		return nil, common.ErrBadRequest.WithDetails(err.Error())
	}
	d.photos = append(d.photos, photo{url: d.store.PublicURL(rel), stored: rel})
	return d.stateLocked(), nil
}

// RemovePhoto drops the photo at index; later photos shift down.
func (d *Draft) RemovePhoto(index int) (*DraftState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.editableLocked(StagePhotos); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(d.photos) {
		return nil, common.ErrNotFound.WithDetails(fmt.Sprintf("No photo at position %d.", index))
	}
	removed := d.photos[index]
	d.photos = append(d.photos[:index], d.photos[index+1:]...)
	if removed.stored != "" {
		if err := d.store.DeleteFile(removed.stored); err != nil {
			d.logger.Warn("Failed to delete removed preview", zap.String("path", removed.stored), zap.Error(err))
		}
	}
	return d.stateLocked(), nil
}

// Publish schedules the simulated publish call. Once the delay elapses the
// draft is terminal and points the client at the dashboard.
func (d *Draft) Publish() (*DraftState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.editableLocked(StageReview); err != nil {
		return nil, err
	}
	d.publishing = true
	d.scope.After(d.delay, d.completePublish)
	return d.stateLocked(), nil
}

func (d *Draft) completePublish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scope.Closed() || !d.publishing {
		return
	}
	d.publishing = false
	d.published = true
	d.reference = slug.Make(fmt.Sprintf("%d %s %s %s", d.details.Year, d.details.Make, d.details.Model, shortID(d.id)))
	d.logger.Info("Listing published", zap.String("draftID", d.id), zap.String("reference", d.reference))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func normalizeDetails(in Details, now time.Time) (Details, error) {
	out := in
	out.Make = strings.TrimSpace(in.Make)
	out.Model = strings.TrimSpace(in.Model)
	out.Description = strings.TrimSpace(in.Description)
	out.Location = strings.TrimSpace(in.Location)
	if in.Mileage != nil {
		m := *in.Mileage
		out.Mileage = &m
	}

	errs := map[string]string{}
	if out.Make == "" {
		errs["Make"] = "The make field is required."
	}
	if out.Model == "" {
		errs["Model"] = "The model field is required."
	}
	if maxYear := now.Year() + 1; out.Year < MinYear || out.Year > maxYear {
		errs["Year"] = fmt.Sprintf("The year field must be between %d and %d.", MinYear, maxYear)
	}
	if out.Mileage == nil {
		errs["Mileage"] = "The mileage field is required."
	} else if *out.Mileage < 0 {
		errs["Mileage"] = "The mileage field must be at least 0."
	}
	if !out.Condition.Valid() {
		errs["Condition"] = fmt.Sprintf("The condition field must be one of: %s, %s, %s.",
			domain.ConditionNew, domain.ConditionForeignUsed, domain.ConditionNigerianUsed)
	}
	if out.Price <= 0 {
		errs["Price"] = "The price field must be greater than 0."
	}
	if out.Description == "" {
		errs["Description"] = "The description field is required."
	}
	if out.Transmission != "" && out.Transmission != domain.TransmissionAutomatic && out.Transmission != domain.TransmissionManual {
		errs["Transmission"] = "The transmission field must be Automatic or Manual."
	}
	if len(errs) > 0 {
		return Details{}, common.NewValidationAPIError(errs)
	}
	return out, nil
}
