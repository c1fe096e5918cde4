package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"page-builder-backend/internal/background"
	"page-builder-backend/internal/forms"
	"page-builder-backend/internal/metrics"
	"page-builder-backend/internal/models"
	"page-builder-backend/internal/schemas"
	"page-builder-backend/pkg/logger"
	"page-builder-backend/pkg/utils"
)

var (
	ErrSaveInProgress = errors.New("a save is already in progress")
	ErrStepInvalid    = errors.New("current step is incomplete")
	ErrStepForward    = errors.New("cannot jump ahead of the current step")
)

// Options tunes a Session. Zero values fall back to DefaultOptions.
type Options struct {
	AutosaveDelay     time.Duration
	SlugCheckDelay    time.Duration
	DefaultCategoryID uint
	// RealtimeFields lists content keys per component type that persist on
	// every edit instead of through the autosave debounce.
	RealtimeFields  map[string][]string
	MaxAttempts     int
	SaveConcurrency int
	RequestTimeout  time.Duration
	Schemas         *schemas.Registry
}

func DefaultOptions() Options {
	return Options{
		AutosaveDelay:     1500 * time.Millisecond,
		SlugCheckDelay:    500 * time.Millisecond,
		DefaultCategoryID: 1,
		RealtimeFields: map[string][]string{
			"PayrollHowItWorksSection": {"steps"},
		},
		MaxAttempts:     3,
		SaveConcurrency: 4,
		RequestTimeout:  15 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.AutosaveDelay <= 0 {
		o.AutosaveDelay = defaults.AutosaveDelay
	}
	if o.SlugCheckDelay <= 0 {
		o.SlugCheckDelay = defaults.SlugCheckDelay
	}
	if o.RealtimeFields == nil {
		o.RealtimeFields = defaults.RealtimeFields
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaults.MaxAttempts
	}
	if o.SaveConcurrency <= 0 {
		o.SaveConcurrency = defaults.SaveConcurrency
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = defaults.RequestTimeout
	}
	if o.Schemas == nil {
		o.Schemas = schemas.Default()
	}
	return o
}

// SlugStatus is the result of the latest slug availability check.
type SlugStatus struct {
	Slug      string
	Valid     bool
	Available bool
	Pending   bool
	Message   string
}

// Ready reports whether the status allows leaving the details step.
func (s SlugStatus) Ready() bool {
	return s.Valid && s.Available && !s.Pending
}

// ReviewWarning lists the schema issues of one section.
type ReviewWarning struct {
	Key    string
	Name   string
	Type   string
	Issues []schemas.Issue
}

type pendingSave struct {
	timer *time.Timer
	base  DraftSection
}

// Session owns one page draft while it is being assembled. Every mutation
// goes through its methods and derives from the latest draft.
type Session struct {
	backend  Backend
	notifier Notifier
	opts     Options
	jobs     *background.Scheduler

	mu         sync.Mutex
	draft      PageDraft
	step       Step
	slug       SlugStatus
	slugEdited bool
	slugTimer  *time.Timer
	slugSeq    uint64
	autosaves  map[string]*pendingSave

	// firing counts autosave callbacks that left the map but have not queued
	// their job yet. idle is signalled when it drops to zero.
	firing int
	idle   *sync.Cond

	checks sync.WaitGroup
	saving atomic.Bool
}

// NewSession starts a session over an empty draft.
func NewSession(backend Backend, notifier Notifier, opts Options) *Session {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	opts = opts.withDefaults()

	// One worker keeps a session's persistence calls in issue order.
	jobs := background.NewScheduler(background.SchedulerConfig{WorkerCount: 1, QueueSize: 64})
	jobs.Start(context.Background())

	s := &Session{
		backend:   backend,
		notifier:  notifier,
		opts:      opts,
		jobs:      jobs,
		step:      StepCategory,
		autosaves: make(map[string]*pendingSave),
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

func (s *Session) notify(level Level, message string) {
	s.notifier.Notify(level, message)
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() PageDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) Slug() SlugStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slug
}

// StepValid reports whether step currently allows moving forward.
func (s *Session) StepValid(step Step) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepValidLocked(step)
}

func (s *Session) stepValidLocked(step Step) bool {
	switch step {
	case StepCategory:
		return s.draft.Page.CategoryID != nil && *s.draft.Page.CategoryID != 0
	case StepDetails:
		return s.slug.Slug == s.draft.Page.Slug && s.slug.Ready()
	default:
		return true
	}
}

// Next advances the wizard when the current step is valid.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stepValidLocked(s.step) {
		return fmt.Errorf("%w: %s", ErrStepInvalid, s.step)
	}
	if s.step < StepReview {
		s.step++
	}
	return nil
}

func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > StepCategory {
		s.step--
	}
}

// GoTo jumps back to step. Jumps past the current step are rejected.
func (s *Session) GoTo(step Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if step < StepCategory || step > s.step {
		return fmt.Errorf("%w: %s", ErrStepForward, step)
	}
	s.step = step
	return nil
}

func (s *Session) SetCategory(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Page.CategoryID = &id
}

// SetName updates the page name and, until the slug is edited by hand,
// derives the slug from it.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.Page.Name = name
	if !s.slugEdited {
		s.draft.Page.Slug = utils.DeriveSlug(name)
		s.scheduleSlugCheckLocked()
	}
}

// SetSlug records a hand-edited slug and schedules an availability check.
func (s *Session) SetSlug(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slugEdited = true
	s.draft.Page.Slug = strings.TrimSpace(slug)
	s.scheduleSlugCheckLocked()
}

func (s *Session) SetMetaTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Page.MetaTitle = title
}

func (s *Session) SetMetaDescription(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Page.MetaDescription = description
}

func (s *Session) SetHomepage(homepage bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Page.IsHomepage = homepage
}

func (s *Session) stopSlugTimerLocked() {
	if s.slugTimer != nil && s.slugTimer.Stop() {
		s.checks.Done()
	}
	s.slugTimer = nil
}

// beginSlugCheckLocked supersedes earlier checks and validates the format.
// It reports false when the slug fails locally.
func (s *Session) beginSlugCheckLocked() (uint64, bool) {
	s.stopSlugTimerLocked()
	s.slugSeq++

	slug := s.draft.Page.Slug
	if !utils.IsValidSlug(slug) {
		s.slug = SlugStatus{Slug: slug, Message: models.ErrInvalidSlug.Error()}
		return s.slugSeq, false
	}
	s.slug = SlugStatus{Slug: slug, Valid: true, Pending: true}
	return s.slugSeq, true
}

func (s *Session) scheduleSlugCheckLocked() {
	seq, ok := s.beginSlugCheckLocked()
	if !ok {
		return
	}

	s.checks.Add(1)
	s.slugTimer = time.AfterFunc(s.opts.SlugCheckDelay, func() {
		defer s.checks.Done()
		if _, err := s.runSlugCheck(context.Background(), seq); err != nil {
			logger.Warn("Slug availability check failed", map[string]interface{}{"error": err.Error()})
		}
	})
}

// CheckSlug runs the availability check for the current slug now.
func (s *Session) CheckSlug(ctx context.Context) (SlugStatus, error) {
	s.mu.Lock()
	seq, ok := s.beginSlugCheckLocked()
	status := s.slug
	s.mu.Unlock()

	if !ok {
		return status, &ValidationError{Field: "slug", Message: status.Message}
	}
	return s.runSlugCheck(ctx, seq)
}

func (s *Session) runSlugCheck(ctx context.Context, seq uint64) (SlugStatus, error) {
	s.mu.Lock()
	if seq != s.slugSeq {
		status := s.slug
		s.mu.Unlock()
		return status, nil
	}
	slug := s.slug.Slug
	var exclude *uint
	if s.draft.Persisted() {
		id := s.draft.Page.ID
		exclude = &id
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()
	available, err := s.backend.CheckSlugAvailable(ctx, slug, exclude)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer edit owns the status now.
	if seq != s.slugSeq {
		return s.slug, nil
	}
	if err != nil {
		s.slug = SlugStatus{Slug: slug, Valid: true, Message: "Could not check slug availability"}
		return s.slug, err
	}

	s.slug = SlugStatus{Slug: slug, Valid: true, Available: available}
	if !available {
		s.slug.Message = models.ErrSlugTaken.Error()
	}
	return s.slug, nil
}

func (s *Session) nextOrderIndex(ctx context.Context, pageID uint, exclude string) int {
	s.mu.Lock()
	siblings := make([]models.Section, 0, len(s.draft.Sections))
	for _, section := range s.draft.Sections {
		if section.Key != exclude {
			siblings = append(siblings, section.Section)
		}
	}
	s.mu.Unlock()

	if pageID != 0 {
		remote, err := s.backend.GetPageSections(ctx, pageID)
		if err != nil {
			logger.Warn("Falling back to local sections for order index", map[string]interface{}{
				"page_id": pageID,
				"error":   err.Error(),
			})
		} else {
			siblings = append(siblings, remote...)
		}
	}
	return NextOrderIndex(siblings)
}

// AddSection appends a seeded section of type tag. On a persisted page the
// section is created right away, retrying order index conflicts; a final
// failure removes it again.
func (s *Session) AddSection(ctx context.Context, tag string) (DraftSection, error) {
	name := tag
	if entry, ok := s.opts.Schemas.Lookup(tag); ok {
		tag, name = entry.Type, entry.Name
	}

	s.mu.Lock()
	pageID := s.draft.Page.ID
	s.mu.Unlock()

	section := NewDraftSection(models.Section{
		PageID:        pageID,
		ComponentType: tag,
		ComponentName: name,
		Content:       s.opts.Schemas.SeedContent(tag),
		IsVisible:     true,
		Theme:         models.ThemeLight,
	})
	section.OrderIndex = s.nextOrderIndex(ctx, pageID, section.Key)

	s.mu.Lock()
	s.draft = AddSection(s.draft, section)
	s.mu.Unlock()

	if pageID == 0 {
		return section, nil
	}

	created, err := s.createWithRetry(ctx, pageID, section.Key)
	if err != nil {
		s.mu.Lock()
		s.draft = dropSection(s.draft, section.Key)
		s.mu.Unlock()
		s.notify(LevelError, fmt.Sprintf("Failed to add %s: %v", name, err))
		return DraftSection{}, err
	}
	return created, nil
}

func (s *Session) createWithRetry(ctx context.Context, pageID uint, key string) (DraftSection, error) {
	for attempt := 1; ; attempt++ {
		s.mu.Lock()
		current, ok := s.draft.Section(key)
		s.mu.Unlock()
		if !ok {
			return DraftSection{}, ErrUnknownSection
		}

		created, err := s.backend.CreateSection(ctx, pageID, current.Input())
		metrics.SectionPersisted("create", err)
		if err == nil {
			s.mu.Lock()
			if i := s.draft.Find(key); i >= 0 {
				s.draft.Sections[i].ID = created.ID
				s.draft.Sections[i].PageID = pageID
				s.draft.Sections[i].CreatedAt = created.CreatedAt
				s.draft.Sections[i].UpdatedAt = created.UpdatedAt
				current = s.draft.Sections[i].clone()
			}
			s.mu.Unlock()
			return current, nil
		}

		if !errors.Is(err, models.ErrOrderIndexConflict) || attempt >= s.opts.MaxAttempts {
			return DraftSection{}, err
		}

		metrics.OrderConflictRetried()
		order := s.nextOrderIndex(ctx, pageID, key)
		logger.Warn("Order index conflict, retrying section create", map[string]interface{}{
			"page_id":     pageID,
			"attempt":     attempt,
			"order_index": order,
		})

		s.mu.Lock()
		if i := s.draft.Find(key); i >= 0 {
			s.draft.Sections[i].OrderIndex = order
		}
		s.mu.Unlock()
	}
}

func dropSection(d PageDraft, key string) PageDraft {
	out := d.Clone()
	if i := out.Find(key); i >= 0 {
		out.Sections = append(out.Sections[:i], out.Sections[i+1:]...)
	}
	return out
}

func (s *Session) isRealtime(tag, field string) bool {
	segments, err := forms.ParsePath(field)
	if err != nil || len(segments) == 0 {
		return false
	}
	for _, key := range s.opts.RealtimeFields[tag] {
		if key == segments[0].Key {
			return true
		}
	}
	return false
}

// UpdateSection sets field on the section with key. Structural fields are
// written onto the section unless the section's content declares a key of
// the same name; anything else is a path inside its content. Persisted
// sections save in the background and roll back on failure.
func (s *Session) UpdateSection(key, field string, value interface{}) error {
	return s.updateSection(key, field, value, func(current DraftSection) bool {
		return IsStructuralField(field) && !s.hasContentKey(current, field)
	})
}

// UpdateSectionField sets one of the section's own fields (isVisible, theme,
// componentType, componentName, orderIndex or the whole content).
func (s *Session) UpdateSectionField(key, field string, value interface{}) error {
	if !IsStructuralField(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return s.updateSection(key, field, value, func(DraftSection) bool { return true })
}

// UpdateSectionContent sets the content value at path.
func (s *Session) UpdateSectionContent(key, path string, value interface{}) error {
	return s.updateSection(key, path, value, func(DraftSection) bool { return false })
}

func (s *Session) hasContentKey(section DraftSection, field string) bool {
	if _, ok := section.Content[field]; ok {
		return true
	}
	_, ok := s.opts.Schemas.SeedContent(section.ComponentType)[field]
	return ok
}

func (s *Session) updateSection(key, field string, value interface{}, structuralFor func(DraftSection) bool) error {
	s.mu.Lock()
	i := s.draft.Find(key)
	if i < 0 {
		s.mu.Unlock()
		return ErrUnknownSection
	}
	current := s.draft.Sections[i].clone()

	structural := structuralFor(current)
	var (
		next DraftSection
		err  error
	)
	if structural {
		next, err = SetSectionField(current, field, value)
	} else {
		next, err = MergeContent(current, field, value)
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.draft.Sections[i] = next

	persisted := s.draft.Persisted() && next.Persisted()
	immediate := structural || s.isRealtime(next.ComponentType, field)
	if persisted && !immediate {
		s.scheduleAutosaveLocked(key, current)
	}
	s.mu.Unlock()

	if persisted && immediate {
		s.enqueueUpdate("update", key, next, current)
	}
	return nil
}

func (s *Session) scheduleAutosaveLocked(key string, base DraftSection) {
	if p, ok := s.autosaves[key]; ok {
		p.timer.Stop()
		base = p.base
	}
	p := &pendingSave{base: base}
	p.timer = time.AfterFunc(s.opts.AutosaveDelay, func() { s.fireAutosave(key, p) })
	s.autosaves[key] = p
}

func (s *Session) fireAutosave(key string, p *pendingSave) {
	s.mu.Lock()
	if s.autosaves[key] != p {
		s.mu.Unlock()
		return
	}
	delete(s.autosaves, key)
	current, ok := s.draft.Section(key)
	s.firing++
	s.mu.Unlock()

	if ok && current.Persisted() {
		s.enqueueUpdate("autosave", key, current, p.base)
	}

	s.mu.Lock()
	s.firing--
	if s.firing == 0 {
		s.idle.Broadcast()
	}
	s.mu.Unlock()
}

// takeAutosavesLocked stops every debounce timer, removes the pending saves
// and waits for callbacks that already fired to queue their jobs.
func (s *Session) takeAutosavesLocked() map[string]*pendingSave {
	pending := make(map[string]*pendingSave, len(s.autosaves))
	for key, p := range s.autosaves {
		p.timer.Stop()
		pending[key] = p
		delete(s.autosaves, key)
	}
	for s.firing > 0 {
		s.idle.Wait()
	}
	return pending
}

func (s *Session) cancelAutosaveLocked(key string) {
	if p, ok := s.autosaves[key]; ok {
		p.timer.Stop()
		delete(s.autosaves, key)
	}
}

func (s *Session) cancelAutosaves() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.takeAutosavesLocked()
}

func (s *Session) enqueueUpdate(op, key string, snapshot, base DraftSection) {
	id := snapshot.ID
	in := snapshot.Input()

	s.schedule(background.Job{
		Op:      op,
		Key:     key,
		Timeout: s.opts.RequestTimeout,
		Run: func(ctx context.Context) error {
			return s.backend.UpdateSection(ctx, id, in)
		},
		OnFailure: func(err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.restoreSection(key, base)
			s.notify(LevelError, fmt.Sprintf("Failed to save %s: %v", base.ComponentName, err))
		},
	})
}

func (s *Session) schedule(job background.Job) {
	if err := s.jobs.Schedule(job); err != nil {
		logger.Error(err, "Failed to queue persistence job", map[string]interface{}{"op": job.Op, "key": job.Key})
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
	}
}

func (s *Session) restoreSection(key string, base DraftSection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.draft.Find(key); i >= 0 {
		s.draft.Sections[i] = base.clone()
	}
}

// RemoveSection drops the section with key and renumbers its siblings.
func (s *Session) RemoveSection(key string) error {
	s.mu.Lock()
	index := s.draft.Find(key)
	next, removed, err := RemoveSection(s.draft, key)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.draft = next
	s.cancelAutosaveLocked(key)
	pageID := next.Page.ID
	refs := next.Refs()
	s.mu.Unlock()

	if pageID == 0 {
		return nil
	}

	deleted := !removed.Persisted()
	s.schedule(background.Job{
		Op:      "remove",
		Key:     key,
		Timeout: s.opts.RequestTimeout,
		Run: func(ctx context.Context) error {
			if !deleted {
				if err := s.backend.DeleteSection(ctx, removed.ID); err != nil {
					return err
				}
				deleted = true
			}
			if len(refs) == 0 {
				return nil
			}
			return s.backend.ReorderSections(ctx, pageID, refs)
		},
		OnFailure: func(err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			if !deleted {
				s.mu.Lock()
				s.draft = insertSection(s.draft, removed, index)
				s.mu.Unlock()
			}
			s.notify(LevelError, fmt.Sprintf("Failed to remove %s: %v", removed.ComponentName, err))
		},
	})
	return nil
}

func insertSection(d PageDraft, section DraftSection, index int) PageDraft {
	out := d.Clone()
	if index < 0 || index > len(out.Sections) {
		index = len(out.Sections)
	}
	sections := make([]DraftSection, 0, len(out.Sections)+1)
	sections = append(sections, out.Sections[:index]...)
	sections = append(sections, section.clone())
	sections = append(sections, out.Sections[index:]...)
	out.Sections = Renumber(sections)
	return out
}

// DuplicateSection appends a copy of the section with key.
func (s *Session) DuplicateSection(key string) (DraftSection, error) {
	s.mu.Lock()
	next, dup, err := DuplicateSection(s.draft, key)
	if err != nil {
		s.mu.Unlock()
		return DraftSection{}, err
	}
	s.draft = next
	pageID := next.Page.ID
	s.mu.Unlock()

	if pageID == 0 {
		return dup, nil
	}

	s.schedule(background.Job{
		Op:      "duplicate",
		Key:     dup.Key,
		Timeout: s.opts.RequestTimeout,
		Run: func(ctx context.Context) error {
			if _, err := s.createWithRetry(ctx, pageID, dup.Key); err != nil {
				return err
			}
			s.mu.Lock()
			s.draft.Sections = Renumber(s.draft.Sections)
			refs := s.draft.Refs()
			s.mu.Unlock()
			return s.backend.ReorderSections(ctx, pageID, refs)
		},
		OnFailure: func(err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.mu.Lock()
			if section, ok := s.draft.Section(dup.Key); ok && !section.Persisted() {
				s.draft = dropSection(s.draft, dup.Key)
				s.draft.Sections = Renumber(s.draft.Sections)
			}
			s.mu.Unlock()
			s.notify(LevelError, fmt.Sprintf("Failed to duplicate %s: %v", dup.ComponentName, err))
		},
	})
	return dup, nil
}

// MoveSection moves the section at position from to position to.
func (s *Session) MoveSection(from, to int) error {
	s.mu.Lock()
	previous := make([]string, len(s.draft.Sections))
	for i, section := range s.draft.Sections {
		previous[i] = section.Key
	}
	next, err := MoveSection(s.draft, from, to)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.draft = next
	pageID := next.Page.ID
	refs := next.Refs()
	s.mu.Unlock()

	if pageID == 0 || len(refs) == 0 {
		return nil
	}

	s.schedule(background.Job{
		Op:      "reorder",
		Key:     fmt.Sprintf("page-%d", pageID),
		Timeout: s.opts.RequestTimeout,
		Run: func(ctx context.Context) error {
			return s.backend.ReorderSections(ctx, pageID, refs)
		},
		OnFailure: func(err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.mu.Lock()
			s.draft = applyOrder(s.draft, previous)
			s.mu.Unlock()
			s.notify(LevelError, fmt.Sprintf("Failed to reorder sections: %v", err))
		},
	})
	return nil
}

// applyOrder arranges sections by keys; sections not listed go last.
func applyOrder(d PageDraft, keys []string) PageDraft {
	out := d.Clone()
	position := make(map[string]int, len(keys))
	for i, key := range keys {
		position[key] = i
	}

	ordered := make([]DraftSection, 0, len(out.Sections))
	var rest []DraftSection
	slots := make([]*DraftSection, len(keys))
	for i := range out.Sections {
		if p, ok := position[out.Sections[i].Key]; ok {
			slots[p] = &out.Sections[i]
		} else {
			rest = append(rest, out.Sections[i])
		}
	}
	for _, slot := range slots {
		if slot != nil {
			ordered = append(ordered, *slot)
		}
	}
	out.Sections = Renumber(append(ordered, rest...))
	return out
}

// Save validates the draft and persists it. Publishing, or saving a page that
// is already published, additionally checks the page metadata. Only one save
// runs at a time.
func (s *Session) Save(ctx context.Context, publish bool) (models.Page, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return models.Page{}, ErrSaveInProgress
	}
	defer s.saving.Store(false)

	draft := s.Draft()
	if publish || draft.Page.IsPublished {
		if err := ValidatePublish(draft); err != nil {
			s.notify(LevelError, err.Error())
			return models.Page{}, err
		}
	}

	draft = ApplyDefaults(draft, s.opts.DefaultCategoryID)
	if publish {
		draft.Page.IsPublished = true
	}
	if !utils.IsValidSlug(draft.Page.Slug) {
		err := &ValidationError{Field: "slug", Message: models.ErrInvalidSlug.Error()}
		s.notify(LevelError, err.Error())
		return models.Page{}, err
	}
	if err := ValidateSections(draft.Sections); err != nil {
		s.notify(LevelError, err.Error())
		return models.Page{}, err
	}

	s.cancelAutosaves()
	if err := s.jobs.Wait(ctx); err != nil {
		return models.Page{}, err
	}

	var (
		saved models.Page
		err   error
	)
	if draft.Persisted() {
		saved, err = s.updatePage(ctx, draft)
	} else {
		saved, err = s.createPage(ctx, draft)
	}
	if err != nil {
		logger.Error(err, "Failed to save page", map[string]interface{}{"page_id": draft.Page.ID, "slug": draft.Page.Slug})
		s.notify(LevelError, fmt.Sprintf("Failed to save page: %v", err))
		return models.Page{}, err
	}

	if publish {
		s.notify(LevelSuccess, "Page published")
	} else {
		s.notify(LevelSuccess, "Page saved")
	}
	return saved, nil
}

func (s *Session) createPage(ctx context.Context, draft PageDraft) (models.Page, error) {
	saved, err := s.backend.CreatePage(ctx, draft.Input())
	if err != nil {
		return models.Page{}, err
	}

	// Stored ids are matched to the sections as they were sent; the live
	// draft may have been reordered since.
	byOrder := make(map[int]uint, len(saved.Sections))
	for _, section := range saved.Sections {
		byOrder[section.OrderIndex] = section.ID
	}
	ids := make(map[string]uint, len(draft.Sections))
	for _, sent := range draft.Sections {
		if id, ok := byOrder[sent.OrderIndex]; ok {
			ids[sent.Key] = id
		}
	}

	s.mu.Lock()
	s.applySavedLocked(saved, draft)
	for i := range s.draft.Sections {
		if id, ok := ids[s.draft.Sections[i].Key]; ok && !s.draft.Sections[i].Persisted() {
			s.draft.Sections[i].ID = id
			s.draft.Sections[i].PageID = saved.ID
		}
	}
	s.mu.Unlock()

	return saved, nil
}

func (s *Session) updatePage(ctx context.Context, draft PageDraft) (models.Page, error) {
	pageID := draft.Page.ID
	in := draft.Input()
	in.Sections = nil

	saved, err := s.backend.UpdatePage(ctx, pageID, in)
	if err != nil {
		return models.Page{}, err
	}

	if refs := draft.Refs(); len(refs) > 0 {
		if err := s.backend.ReorderSections(ctx, pageID, refs); err != nil {
			return models.Page{}, fmt.Errorf("reorder sections: %w", err)
		}
	}

	var (
		createdMu sync.Mutex
		created   = make(map[string]models.Section)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.SaveConcurrency)
	for _, section := range draft.Sections {
		section := section
		g.Go(func() error {
			if section.Persisted() {
				err := s.backend.UpdateSection(gctx, section.ID, section.Input())
				metrics.SectionPersisted("update", err)
				if err != nil {
					return fmt.Errorf("update section %q: %w", section.ComponentName, err)
				}
				return nil
			}

			result, err := s.backend.CreateSection(gctx, pageID, section.Input())
			metrics.SectionPersisted("create", err)
			if err != nil {
				return fmt.Errorf("create section %q: %w", section.ComponentName, err)
			}
			createdMu.Lock()
			created[section.Key] = result
			createdMu.Unlock()
			return nil
		})
	}
	groupErr := g.Wait()

	s.mu.Lock()
	s.applySavedLocked(saved, draft)
	for i := range s.draft.Sections {
		if result, ok := created[s.draft.Sections[i].Key]; ok {
			s.draft.Sections[i].ID = result.ID
			s.draft.Sections[i].PageID = pageID
		}
	}
	saved.Sections = draftModels(s.draft.Sections)
	s.mu.Unlock()

	if groupErr != nil {
		return models.Page{}, groupErr
	}
	return saved, nil
}

// applySavedLocked copies the backend identity and the filled-in defaults
// onto the live draft without discarding edits made during the save.
func (s *Session) applySavedLocked(saved models.Page, sent PageDraft) {
	page := &s.draft.Page
	page.ID = saved.ID
	page.CreatedAt = saved.CreatedAt
	page.UpdatedAt = saved.UpdatedAt
	page.IsPublished = saved.IsPublished
	page.PublishedAt = saved.PublishedAt
	if strings.TrimSpace(page.Name) == "" {
		page.Name = sent.Page.Name
	}
	if strings.TrimSpace(page.Slug) == "" {
		page.Slug = sent.Page.Slug
	}
	if page.CategoryID == nil {
		page.CategoryID = sent.Page.CategoryID
	}
	if s.slug.Slug != page.Slug {
		s.slug = SlugStatus{Slug: page.Slug, Valid: true, Available: true}
	}
	s.slugEdited = true
}

// Review returns schema warnings for the sections that have any.
func (s *Session) Review() []ReviewWarning {
	draft := s.Draft()

	var warnings []ReviewWarning
	for _, section := range draft.Sections {
		issues := s.opts.Schemas.Validate(section.ComponentType, section.Content)
		if len(issues) == 0 {
			continue
		}
		warnings = append(warnings, ReviewWarning{
			Key:    section.Key,
			Name:   section.ComponentName,
			Type:   section.ComponentType,
			Issues: issues,
		})
	}
	return warnings
}

// Load replaces the draft with a stored page and its sections.
func (s *Session) Load(ctx context.Context, pageID uint) error {
	page, err := s.backend.GetPage(ctx, pageID)
	if err != nil {
		return fmt.Errorf("load page %d: %w", pageID, err)
	}
	sections, err := s.backend.GetPageSections(ctx, pageID)
	if err != nil {
		return fmt.Errorf("load sections of page %d: %w", pageID, err)
	}

	s.cancelAutosaves()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopSlugTimerLocked()
	s.slugSeq++
	s.draft = NewDraft(page, sections)
	s.slugEdited = true
	s.slug = SlugStatus{Slug: page.Slug, Valid: utils.IsValidSlug(page.Slug), Available: true}
	s.step = StepCategory
	return nil
}

// Flush sends pending autosaves now and waits for all background persistence.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := s.takeAutosavesLocked()
	snapshots := make(map[string]DraftSection, len(pending))
	for key := range pending {
		if current, ok := s.draft.Section(key); ok && current.Persisted() {
			snapshots[key] = current
		}
	}
	s.mu.Unlock()

	for key, current := range snapshots {
		s.enqueueUpdate("autosave", key, current, pending[key].base)
	}
	return s.Wait(ctx)
}

// Wait blocks until queued persistence and slug checks have finished.
func (s *Session) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.checks.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.jobs.Wait(ctx)
}

// Close flushes pending work and stops the background worker.
func (s *Session) Close(ctx context.Context) error {
	flushErr := s.Flush(ctx)

	s.mu.Lock()
	s.stopSlugTimerLocked()
	s.mu.Unlock()

	if err := s.jobs.Shutdown(ctx); err != nil {
		return err
	}
	return flushErr
}
