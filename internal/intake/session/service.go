package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"esports-waitlist/internal/common/config"
	"esports-waitlist/internal/common/errors"
	"esports-waitlist/internal/common/logger"
	"esports-waitlist/internal/common/metrics"
	"esports-waitlist/internal/common/observability"
	"esports-waitlist/internal/intake/form"
	"esports-waitlist/internal/intake/ledger"
	"esports-waitlist/internal/intake/payload"
	"esports-waitlist/internal/intake/submit"
	"esports-waitlist/internal/intake/validate"
	"esports-waitlist/internal/models"
)

const (
	WaitlistAcknowledgment    = "You're on the waitlist! We'll reach out when your cohort opens."
	PartnershipAcknowledgment = "Thanks for reaching out. Our partnerships team will be in touch."
)

// Dependencies wires a Service. Ledger and Observability may be nil.
type Dependencies struct {
	Store         Store
	Coordinator   *submit.Coordinator
	Ledger        ledger.Ledger
	Catalog       *models.Catalog
	Upstream      config.UpstreamConfig
	Observability *observability.Observability
	Logger        logger.Logger
}

// Outcome is what a submit call produced. Session is nil for partnership
// inquiries.
type Outcome struct {
	Session *Session
	Result  submit.Result
	Errors  validate.FieldErrors
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// Service applies actions to stored drafts and submits them upstream.
// Transitions of one session are serialized; the upstream call runs outside
// the session lock so a newer submit can supersede it.
type Service struct {
	store       Store
	coordinator *submit.Coordinator
	ledger      ledger.Ledger
	catalog     *models.Catalog
	upstream    config.UpstreamConfig
	obs         *observability.Observability
	logger      logger.Logger
	now         func() time.Time

	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

func NewService(deps Dependencies) *Service {
	l := deps.Ledger
	if l == nil {
		l = ledger.NopLedger{}
	}
	catalog := deps.Catalog
	if catalog == nil {
		catalog = models.LaunchCatalog()
	}
	return &Service{
		store:       deps.Store,
		coordinator: deps.Coordinator,
		ledger:      l,
		catalog:     catalog,
		upstream:    deps.Upstream,
		obs:         deps.Observability,
		logger:      deps.Logger.WithFields(map[string]interface{}{"component": "intake-session"}),
		now:         func() time.Time { return time.Now().UTC() },
		locks:       make(map[string]*sessionLock),
	}
}

// Catalog returns the games offered on the form.
func (s *Service) Catalog() *models.Catalog { return s.catalog }

func (s *Service) lock(id string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

// Create starts a draft from the initial form state.
func (s *Service) Create(ctx context.Context, attribution *models.MarketingAttribution) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:          uuid.New().String(),
		State:       form.Initial(),
		Attribution: attribution,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Intake session created", map[string]interface{}{
		"sessionId":      sess.ID,
		"hasAttribution": attribution != nil,
	})
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// Discard drops a draft and aborts any submission running for it.
func (s *Service) Discard(ctx context.Context, id string) error {
	s.coordinator.Cancel(id)
	return s.store.Delete(ctx, id)
}

// Dispatch applies one action to the draft. Surfaced errors keyed by row
// index are recomputed when the action shifts rows, so they never point at
// the wrong row.
func (s *Service) Dispatch(ctx context.Context, id string, action form.Action) (*Session, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.State = form.Reduce(sess.State, action)
	if len(sess.Errors) > 0 && form.ShiftsRows(action) {
		sess.Errors = validate.Waitlist(sess.State)
	}
	sess.UpdatedAt = s.now()

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	metrics.ActionsDispatched.WithLabelValues(action.Kind()).Inc()
	return sess, nil
}

// Submit validates the draft and posts it to the waitlist endpoint. A
// validation failure stores the errors and returns VALIDATION_FAILED without
// any network call. Upstream failures leave the draft untouched; success
// clears the contact fields and keeps every preference.
func (s *Service) Submit(ctx context.Context, id string) (Outcome, error) {
	unlock := s.lock(id)
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		unlock()
		return Outcome{}, err
	}

	errs := validate.Waitlist(sess.State)
	if !errs.Empty() {
		sess.Errors = errs
		sess.UpdatedAt = s.now()
		saveErr := s.store.Save(ctx, sess)
		unlock()
		if saveErr != nil {
			return Outcome{}, saveErr
		}

		first := errs.First()
		metrics.ValidationFailures.WithLabelValues(ledger.FormWaitlist, first).Inc()
		s.logger.Debug("Submit blocked by validation", map[string]interface{}{
			"sessionId":  id,
			"firstField": first,
			"errorCount": len(errs),
		})
		return Outcome{Session: sess, Errors: errs}, errors.NewValidationFailedError(first, len(errs))
	}

	body := payload.Build(sess.State, sess.Attribution, s.catalog)
	if err := payload.Conform(body); err != nil {
		unlock()
		metrics.SchemaViolations.Inc()
		s.logger.Error("Built payload failed schema check", map[string]interface{}{
			"sessionId": id,
			"error":     err.Error(),
		})
		return Outcome{}, err
	}
	unlock()

	result := s.post(ctx, ledger.FormWaitlist, id, id, s.upstream.WaitlistURL(), body.Email, body)
	if result.Status == submit.StatusCanceled {
		return Outcome{Session: sess, Result: result}, nil
	}

	// The draft may have changed while the request was out; apply the
	// outcome to the latest copy. The caller going away must not lose it.
	storeCtx := context.WithoutCancel(ctx)
	unlock = s.lock(id)
	defer unlock()

	latest, err := s.store.Get(storeCtx, id)
	if err != nil {
		return Outcome{Result: result}, err
	}
	if result.Succeeded() {
		if result.Message == "" {
			result.Message = WaitlistAcknowledgment
		}
		latest.State = form.Reduce(latest.State, form.ClearContact{})
		latest.Errors = nil
	}
	latest.LastResult = &result
	latest.UpdatedAt = s.now()

	if err := s.store.Save(storeCtx, latest); err != nil {
		return Outcome{Result: result}, err
	}
	return Outcome{Session: latest, Result: result}, nil
}

// SubmitPartnership validates and posts a partnership inquiry. Attempts are
// keyed by email, so a repeat for the same address supersedes the first.
func (s *Service) SubmitPartnership(ctx context.Context, in models.PartnershipInquiry) (Outcome, error) {
	errs := validate.Partnership(in)
	if !errs.Empty() {
		first := errs.First()
		metrics.ValidationFailures.WithLabelValues(ledger.FormPartnerships, first).Inc()
		return Outcome{Errors: errs}, errors.NewValidationFailedError(first, len(errs))
	}

	body := payload.Partnership(in)
	if err := payload.ConformPartnership(body); err != nil {
		metrics.SchemaViolations.Inc()
		s.logger.Error("Built partnership payload failed schema check", map[string]interface{}{
			"error": err.Error(),
		})
		return Outcome{}, err
	}

	key := ledger.FormPartnerships + ":" + strings.ToLower(body.Email)
	result := s.post(ctx, ledger.FormPartnerships, key, "", s.upstream.PartnershipsURL(), body.Email, body)
	if result.Succeeded() && result.Message == "" {
		result.Message = PartnershipAcknowledgment
	}
	return Outcome{Result: result}, nil
}

func (s *Service) post(ctx context.Context, formName, key, sessionID, url, email string, body interface{}) submit.Result {
	ctx, span := s.obs.StartSpan(ctx, "intake.submit", attribute.String("form", formName))
	defer span.End()

	inFlight := metrics.SubmissionsInFlight.WithLabelValues(formName)
	inFlight.Inc()
	start := time.Now()

	result := s.coordinator.Submit(ctx, key, url, body)

	elapsed := time.Since(start)
	inFlight.Dec()

	status := string(result.Status)
	span.SetAttributes(attribute.String("status", status))
	if sessionID != "" {
		span.SetAttributes(attribute.String("session.id", sessionID))
	}
	if result.HTTPStatus != 0 {
		span.SetAttributes(attribute.Int("http.status_code", result.HTTPStatus))
	}
	if result.Status == submit.StatusNetworkFailed || result.Status == submit.StatusRejected {
		span.SetStatus(codes.Error, result.Err.Error())
	}
	metrics.SubmissionsTotal.WithLabelValues(formName, status).Inc()
	metrics.SubmissionDuration.WithLabelValues(formName).Observe(elapsed.Seconds())
	s.obs.RecordSubmission(ctx, formName, status)
	s.obs.RecordSubmissionDuration(ctx, formName, elapsed, status)

	fields := map[string]interface{}{
		"form":       formName,
		"status":     status,
		"durationMs": elapsed.Milliseconds(),
	}
	if sessionID != "" {
		fields["sessionId"] = sessionID
	}

	if result.Status == submit.StatusCanceled {
		s.logger.Debug("Submission superseded", fields)
		return result
	}

	if _, err := s.ledger.Record(context.WithoutCancel(ctx), ledger.Entry{
		Form:       formName,
		SessionID:  sessionID,
		Email:      email,
		Status:     status,
		HTTPStatus: result.HTTPStatus,
		Message:    result.Message,
		Payload:    body,
	}); err != nil {
		s.logger.Warn("Failed to record submission", map[string]interface{}{
			"form":  formName,
			"error": err.Error(),
		})
	}

	if result.Succeeded() {
		s.logger.Info("Submission accepted", fields)
	} else {
		stdErr := errors.Normalize(result.Err)
		fields["error"] = stdErr.Error()
		fields["category"] = errors.GetErrorCategory(stdErr.Code)
		s.logger.Warn("Submission failed", fields)
	}
	return result
}
