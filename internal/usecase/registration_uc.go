package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Antonio1491/parksys-sub000/internal/domain"
	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/adapter"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/repository"
	"github.com/Antonio1491/parksys-sub000/internal/infra/logging"
	"github.com/Antonio1491/parksys-sub000/internal/infra/metrics"
)

// Compile-time check
var _ RegistrationUseCase = (*registrationUC)(nil)

// Locker narrows concurrent confirmations for the same intent before they
// reach the database. The registrations unique index remains authoritative.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}

// Participant is the identity attached to the registration record.
type Participant struct {
	Name  string
	Email string
	Phone string
}

type RegistrationUseCase interface {
	// Complete re-verifies the payment intent with the gateway, cross-checks
	// the audit metadata and persists the registration plus its confirmation
	// email outbox entry in one transaction.
	Complete(ctx context.Context, activityID, intentID string, participant Participant) (*model.Registration, error)
	// ListByActivity serves the admin dashboard.
	ListByActivity(ctx context.Context, activityID string, limit, offset int) ([]*model.Registration, error)
}

type registrationUC struct {
	activities    repository.ActivityRepository
	registrations repository.RegistrationRepository
	outbox        repository.OutboxRepository
	gateway       adapter.PaymentGateway
	tm            repository.TransactionManager
	locker        Locker
	currency      string
	emailTemplate string
	now           func() time.Time
	log           *zerolog.Logger
}

func NewRegistrationUseCase(
	activities repository.ActivityRepository,
	registrations repository.RegistrationRepository,
	outbox repository.OutboxRepository,
	gateway adapter.PaymentGateway,
	tm repository.TransactionManager,
	locker Locker,
	currency string,
	emailTemplate string,
	logger *zerolog.Logger,
) *registrationUC {
	return &registrationUC{
		activities:    activities,
		registrations: registrations,
		outbox:        outbox,
		gateway:       gateway,
		tm:            tm,
		locker:        locker,
		currency:      currency,
		emailTemplate: emailTemplate,
		now:           time.Now,
		log:           logger,
	}
}

const confirmLockTTL = 30 * time.Second

func (u *registrationUC) Complete(ctx context.Context, activityID, intentID string, participant Participant) (*model.Registration, error) {
	defer logging.TraceDuration(u.log, "RegistrationUC.Complete")()

	// Gate 1: only the gateway's own record of the intent is trusted.
	intent, err := u.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		metrics.IncReconcile("error", "gateway")
		return nil, err
	}
	if intent.Status != model.IntentStatusSucceeded {
		metrics.IncReconcile("fail", "not_completed")
		return nil, domain.ErrPaymentNotCompleted
	}

	// Gate 2: currency.
	if !strings.EqualFold(intent.Currency, u.currency) {
		u.logIntegrity(intent, "currency mismatch")
		metrics.IncReconcile("fail", "currency")
		return nil, domain.ErrInvalidCurrency
	}

	// Gate 3: the intent was created for this activity, not replayed from
	// another one.
	if intent.Metadata[model.MetaActivityID] != activityID {
		u.logIntegrity(intent, "activity mismatch")
		metrics.IncReconcile("fail", "activity_mismatch")
		return nil, domain.ErrActivityMismatch
	}

	// Gate 4: the charged amount matches the recorded final price within
	// one minor unit of rounding slack.
	if fp, ok := intent.Metadata[model.MetaFinalPrice]; ok {
		expected, perr := decimal.NewFromString(fp)
		if perr != nil {
			u.logIntegrity(intent, "unparseable final_price metadata")
			metrics.IncReconcile("fail", "amount")
			return nil, domain.ErrAmountInconsistency
		}
		expectedMinor := expected.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		if diff := expectedMinor - intent.Amount; diff > 1 || diff < -1 {
			u.logIntegrity(intent, "amount inconsistency")
			metrics.IncReconcile("fail", "amount")
			return nil, domain.ErrAmountInconsistency
		}
	}

	// Gate 5: the activity must still exist.
	act, err := u.activities.FindByID(ctx, nil, activityID)
	if err != nil {
		metrics.IncReconcile("fail", "activity_not_found")
		return nil, err
	}

	// Narrow the duplicate-confirmation race. The loser fails fast here;
	// if it slips past (lock expiry), the unique index still rejects it.
	token, err := u.locker.TryLock(ctx, "registration:intent:"+intentID, confirmLockTTL)
	if err != nil {
		metrics.IncReconcile("fail", "duplicate")
		return nil, domain.ErrDuplicateRegistration
	}
	defer func() { _ = u.locker.Unlock(ctx, "registration:intent:"+intentID, token) }()

	reg := u.buildRegistration(act, intent, participant)
	entry := u.buildConfirmationEmail(act, reg, participant)

	// Commit point: registration and outbox entry land atomically. Nothing
	// after a successful commit can undo the registration.
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.registrations.Save(ctx, tx, reg); err != nil {
			return err
		}
		return u.outbox.Save(ctx, tx, entry)
	})
	if err != nil {
		if err == domain.ErrDuplicateRegistration {
			metrics.IncReconcile("fail", "duplicate")
			return nil, err
		}
		metrics.IncReconcile("error", "storage")
		return nil, err
	}

	metrics.IncReconcile("ok", "")
	metrics.IncPayment("succeeded")
	metrics.AddPaymentRevenue(u.currency, intent.Amount)
	u.log.Info().
		Str("activity_id", act.ID).
		Str("intent_id", intent.ID).
		Str("registration_id", reg.ID).
		Str("status", string(reg.Status)).
		Msg("registration reconciled")

	return reg, nil
}

func (u *registrationUC) ListByActivity(ctx context.Context, activityID string, limit, offset int) ([]*model.Registration, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.registrations.ListByActivity(ctx, nil, activityID, limit, offset)
}

func (u *registrationUC) buildRegistration(act *model.Activity, intent *model.PaymentIntent, participant Participant) *model.Registration {
	now := u.now()
	status := model.RegistrationStatusApproved
	if act.Pricing.RequiresApproval {
		status = model.RegistrationStatusPending
	}

	reg := &model.Registration{
		ID:               uuid.NewString(),
		ActivityID:       act.ID,
		ParticipantName:  participant.Name,
		ParticipantEmail: participant.Email,
		ParticipantPhone: participant.Phone,
		Status:           status,
		PaymentStatus:    model.RegistrationPaid,
		PaymentIntentID:  intent.ID,
		CustomerID:       intent.CustomerID,
		// The verified gateway amount, never a client-supplied figure.
		PaidAmount:  decimal.NewFromInt(intent.Amount).Div(decimal.NewFromInt(100)),
		Currency:    strings.ToUpper(intent.Currency),
		PaymentDate: now,
		CreatedAt:   now,
	}

	if dt, ok := intent.Metadata[model.MetaDiscountType]; ok && dt != string(model.DiscountNone) && dt != "" {
		reg.AppliedDiscountType = &dt
		if pct, err := strconv.Atoi(intent.Metadata[model.MetaDiscountPercentage]); err == nil {
			reg.AppliedDiscountPercentage = &pct
		}
		if orig, err := decimal.NewFromString(intent.Metadata[model.MetaOriginalPrice]); err == nil {
			reg.OriginalAmount = &orig
		}
		if disc, err := decimal.NewFromString(intent.Metadata[model.MetaDiscountAmount]); err == nil {
			reg.DiscountAmount = &disc
		}
	}
	return reg
}

func (u *registrationUC) buildConfirmationEmail(act *model.Activity, reg *model.Registration, participant Participant) *model.EmailOutboxEntry {
	vars := map[string]string{
		"participant_name": participant.Name,
		"activity_title":   act.Title,
		"park_name":        act.ParkName,
		"location":         act.Location,
		"paid_amount":      reg.PaidAmount.StringFixed(2),
		"currency":         reg.Currency,
		"transaction_id":   reg.PaymentIntentID,
		"payment_date":     reg.PaymentDate.Format(time.RFC3339),
	}
	if act.StartsAt != nil {
		vars["starts_at"] = act.StartsAt.Format(time.RFC3339)
	}
	return &model.EmailOutboxEntry{
		ID:         ulid.Make().String(),
		Recipient:  participant.Email,
		TemplateID: u.emailTemplate,
		Variables:  vars,
		Status:     model.OutboxStatusPending,
		CreatedAt:  u.now(),
	}
}

func (u *registrationUC) logIntegrity(intent *model.PaymentIntent, reason string) {
	// Integrity failures are potential tampering signals; keep them apart
	// from ordinary validation noise.
	u.log.Warn().
		Str("intent_id", intent.ID).
		Str("currency", intent.Currency).
		Int64("amount", intent.Amount).
		Str("reason", reason).
		Msg("payment reconciliation integrity check failed")
}
