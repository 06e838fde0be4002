// Package bot binds one inbound chat message to the classify → branch →
// reply pipeline and carries the Telegram transport.
package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/budgetbuddy/internal/assistant"
	"github.com/dvloznov/budgetbuddy/internal/domain"
	"github.com/dvloznov/budgetbuddy/internal/oracle"
	"github.com/dvloznov/budgetbuddy/internal/statement"
	"github.com/dvloznov/budgetbuddy/internal/store"
)

// monthLayout is the date prefix for one statement month.
const monthLayout = "2006-01"

// User-facing system messages. Each one passes through the humanizer
// before it reaches the user; the raw string is the fallback when
// humanization itself fails.
const (
	msgUnauthorized     = "Unauthorized access!"
	msgEntryAdded       = "Entry added successfully!"
	msgTryAgainLater    = "Something went wrong. Please try again later."
	msgRephrase         = "I had trouble reading that transaction. Please rephrase your input."
	msgNoAmount         = "I couldn't extract the amount from your input. Please try again."
	msgBalanceFailure   = "Failed to fetch the balance. Please try again later."
	msgSaveFailure      = "Failed to save your transaction. Please try again later."
	msgStatementFailure = "Failed to generate the statement. Please try again later."
)

// Reply is one outbound message: plain text, or a document with caption.
type Reply struct {
	Text     string
	Document *Document
}

// Document is a file-attachment reply.
type Document struct {
	Filename string
	Caption  string
	Data     []byte
}

// Archiver stores generated statement documents out of band.
type Archiver interface {
	Upload(ctx context.Context, objectName string, data []byte) (string, error)
}

// Router is the per-turn state machine. It is memoryless across turns:
// every message is classified independently from its raw text alone.
type Router struct {
	Oracle         oracle.Completer
	Store          store.Store
	Archive        Archiver // optional
	AuthorizedUser int64
	OracleTimeout  time.Duration
	Log            zerolog.Logger

	// Now is the clock, replaceable in tests. Defaults to time.Now.
	Now func() time.Time
}

// HandleMessage runs one free-text turn and returns one or two replies.
// It never returns an error: every failure becomes a user-visible notice.
func (r *Router) HandleMessage(ctx context.Context, sender int64, text string) []Reply {
	log := r.Log.With().Int64("sender", sender).Logger()

	if sender != r.AuthorizedUser {
		log.Warn().Msg("unauthorized sender")
		return r.notice(ctx, msgUnauthorized)
	}

	intent, err := r.classify(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("intent classification failed")
		return r.notice(ctx, msgTryAgainLater)
	}
	log.Info().Str("intent", string(intent)).Msg("classified message")

	switch intent {
	case domain.IntentAddTransaction:
		return r.addTransaction(ctx, sender, text)
	case domain.IntentGetBalance:
		return r.balanceReply(ctx, sender)
	case domain.IntentGetStatement:
		return r.statementReply(ctx, sender, r.requestedMonth(text))
	default:
		return r.inquiryReply(ctx, sender, text)
	}
}

// HandleStart answers the start command with a humanized greeting.
func (r *Router) HandleStart(ctx context.Context, sender int64, firstName string) []Reply {
	if sender != r.AuthorizedUser {
		return r.notice(ctx, msgUnauthorized)
	}
	greeting := fmt.Sprintf(
		"Hey, %s! I'm here to help you track your expenses and income. "+
			"Send me a message with the details of your transaction (e.g., 'Spent 500 on groceries').",
		firstName,
	)
	return r.notice(ctx, greeting)
}

// HandleBalance answers the balance command, bypassing classification.
func (r *Router) HandleBalance(ctx context.Context, sender int64) []Reply {
	if sender != r.AuthorizedUser {
		return r.notice(ctx, msgUnauthorized)
	}
	return r.balanceReply(ctx, sender)
}

// HandleStatement answers the statement command for the current month,
// bypassing classification.
func (r *Router) HandleStatement(ctx context.Context, sender int64) []Reply {
	if sender != r.AuthorizedUser {
		return r.notice(ctx, msgUnauthorized)
	}
	return r.statementReply(ctx, sender, r.now().Format(monthLayout))
}

func (r *Router) addTransaction(ctx context.Context, sender int64, text string) []Reply {
	octx, cancel := r.oracleCtx(ctx)
	draft, err := assistant.ExtractTransaction(octx, r.Oracle, text)
	cancel()
	if err != nil {
		if errors.Is(err, assistant.ErrMalformedOutput) {
			r.Log.Warn().Err(err).Msg("extraction returned malformed output")
			return r.notice(ctx, msgRephrase)
		}
		r.Log.Error().Err(err).Msg("extraction failed")
		return r.notice(ctx, msgTryAgainLater)
	}

	if draft.Amount == nil {
		// The classifier may have mis-routed a balance or statement
		// request here; probe the raw text before giving up.
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "balance"):
			return r.balanceReply(ctx, sender)
		case strings.Contains(lower, "statement"):
			return r.statementReply(ctx, sender, r.requestedMonth(text))
		default:
			return r.notice(ctx, msgNoAmount)
		}
	}

	date := r.now()
	if draft.Date != nil {
		date = *draft.Date
	}

	rec, err := domain.NewRecord(sender, date, draft.Category, draft.Kind, *draft.Amount, text)
	if err != nil {
		r.Log.Warn().Err(err).Msg("unusable extracted amount")
		return r.notice(ctx, msgNoAmount)
	}

	if err := r.Store.Insert(ctx, rec); err != nil {
		r.Log.Error().Err(err).Msg("insert failed")
		return r.notice(ctx, msgSaveFailure)
	}
	r.Log.Info().
		Str("record_id", rec.ID).
		Str("category", string(rec.Category)).
		Float64("amount", rec.Amount()).
		Msg("recorded transaction")

	confirmation := r.humanize(ctx, msgEntryAdded)

	totals, err := r.Store.Totals(ctx, sender, "")
	if err != nil {
		r.Log.Error().Err(err).Msg("aggregate after insert failed")
		return []Reply{{Text: confirmation}, {Text: r.humanize(ctx, msgBalanceFailure)}}
	}
	return []Reply{{Text: confirmation}, {Text: r.humanize(ctx, balanceMessage(totals))}}
}

func (r *Router) balanceReply(ctx context.Context, sender int64) []Reply {
	totals, err := r.Store.Totals(ctx, sender, "")
	if err != nil {
		r.Log.Error().Err(err).Msg("aggregate failed")
		return r.notice(ctx, msgBalanceFailure)
	}
	return r.notice(ctx, balanceMessage(totals))
}

func (r *Router) statementReply(ctx context.Context, sender int64, month string) []Reply {
	recs, err := r.Store.List(ctx, sender, month)
	if err != nil {
		r.Log.Error().Err(err).Msg("list for statement failed")
		return r.notice(ctx, msgStatementFailure)
	}
	if len(recs) == 0 {
		return r.notice(ctx, fmt.Sprintf("No transactions found for %s.", month))
	}

	data, err := statement.Render(recs, month, r.now())
	if err != nil {
		r.Log.Error().Err(err).Msg("statement rendering failed")
		return r.notice(ctx, msgStatementFailure)
	}

	if r.Archive != nil {
		object := fmt.Sprintf("statements/%d/%s.pdf", sender, month)
		if uri, err := r.Archive.Upload(ctx, object, data); err != nil {
			r.Log.Warn().Err(err).Msg("statement archive upload failed")
		} else {
			r.Log.Info().Str("uri", uri).Msg("archived statement")
		}
	}

	caption := r.humanize(ctx, fmt.Sprintf("Here is your statement for %s.", month))
	return []Reply{{Document: &Document{
		Filename: "statement.pdf",
		Caption:  caption,
		Data:     data,
	}}}
}

func (r *Router) inquiryReply(ctx context.Context, sender int64, text string) []Reply {
	recs, err := r.Store.List(ctx, sender, "")
	if err != nil {
		r.Log.Error().Err(err).Msg("list for summary failed")
		return r.notice(ctx, msgTryAgainLater)
	}

	octx, cancel := r.oracleCtx(ctx)
	defer cancel()
	answer, err := assistant.SummarizeHistory(octx, r.Oracle, recs, text)
	if err != nil {
		r.Log.Error().Err(err).Msg("summarization failed")
		return r.notice(ctx, msgTryAgainLater)
	}
	// The summarizer's answer is already phrased for the user; it is not
	// humanized a second time.
	return []Reply{{Text: answer}}
}

func (r *Router) classify(ctx context.Context, text string) (domain.Intent, error) {
	octx, cancel := r.oracleCtx(ctx)
	defer cancel()
	return assistant.ClassifyIntent(octx, r.Oracle, text)
}

// notice humanizes a system message into a single reply.
func (r *Router) notice(ctx context.Context, msg string) []Reply {
	return []Reply{{Text: r.humanize(ctx, msg)}}
}

// humanize rewrites a system message, falling back to the raw string if
// the humanizer itself fails.
func (r *Router) humanize(ctx context.Context, msg string) string {
	octx, cancel := r.oracleCtx(ctx)
	defer cancel()
	out, err := assistant.Humanize(octx, r.Oracle, msg)
	if err != nil {
		r.Log.Warn().Err(err).Msg("humanization failed, replying with raw message")
		return msg
	}
	return out
}

func balanceMessage(t store.Totals) string {
	return fmt.Sprintf("Current available balance: %s", statement.FormatAmount(t.Balance()))
}

func (r *Router) oracleCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.OracleTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *Router) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

var (
	isoMonthRe  = regexp.MustCompile(`\b(20\d{2})-(0[1-9]|1[0-2])\b`)
	nameMonthRe = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(20\d{2})\b`)
)

// requestedMonth scans the utterance for an explicit month and falls
// back to the current one.
func (r *Router) requestedMonth(text string) string {
	if m := isoMonthRe.FindString(text); m != "" {
		return m
	}
	if m := nameMonthRe.FindStringSubmatch(text); m != nil {
		name := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		if t, err := time.Parse("January 2006", name+" "+m[2]); err == nil {
			return t.Format(monthLayout)
		}
	}
	return r.now().Format(monthLayout)
}
