// Package webhook turns WhatsApp message notifications into leads.
package webhook

import (
	"context"
	"strings"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/pkg/config"
	"github.com/Ujjwal3492/Fitness/pkg/whatsapp"
	"github.com/Ujjwal3492/Fitness/prometheus"
	"go.uber.org/zap"
)

const unknownContact = "Unknown"

// LeadStore persists leads, merging repeated messages from one number
type LeadStore interface {
	Upsert(ctx context.Context, lead *model.Lead) error
}

// Replier sends the optional acknowledgement message
type Replier interface {
	Ready() bool
	SendText(ctx context.Context, to, body string) (*whatsapp.SendResponse, error)
}

// Result summarises one processed notification
type Result struct {
	Messages int
	Matched  int
	Stored   int
	Failed   int
}

// Ingestor stores keyword tagged messages as leads
type Ingestor struct {
	leads        LeadStore
	replier      Replier
	keyword      string
	autoReply    bool
	replyMessage string
	log          *zap.Logger
	metrics      *prometheus.Metrics
}

// NewIngestor creates an ingestor. replier may be nil when auto replies
// are not wanted.
func NewIngestor(leads LeadStore, replier Replier, cfg config.WhatsAppConfig, log *zap.Logger, metrics *prometheus.Metrics) *Ingestor {
	return &Ingestor{
		leads:        leads,
		replier:      replier,
		keyword:      strings.ToLower(strings.TrimSpace(cfg.Keyword)),
		autoReply:    cfg.AutoReply && replier != nil,
		replyMessage: cfg.ReplyMessage,
		log:          log,
		metrics:      metrics,
	}
}

// Matches reports whether a message body starts with the keyword,
// ignoring case and leading whitespace
func (i *Ingestor) Matches(body string) bool {
	if i.keyword == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimLeft(body, " \t\r\n")), i.keyword)
}

// Ingest processes every message of every change in the payload. A message
// that fails to store is logged and skipped.
func (i *Ingestor) Ingest(ctx context.Context, payload *Payload) Result {
	var res Result

	for _, entry := range payload.Entry {
		for ci := range entry.Changes {
			value := &entry.Changes[ci].Value
			for _, msg := range value.Messages {
				res.Messages++
				if msg.Text == nil || msg.From == "" || !i.Matches(msg.Text.Body) {
					i.metrics.RecordLead("ignored")
					continue
				}
				res.Matched++

				if err := i.store(ctx, value, msg); err != nil {
					res.Failed++
					i.metrics.RecordLead("failed")
					i.log.Error("Error saving feedback",
						zap.String("message_id", msg.ID),
						zap.Error(err))
					continue
				}
				res.Stored++
				i.metrics.RecordLead("stored")

				if i.autoReply {
					i.reply(ctx, msg.From)
				}
			}
		}
	}

	return res
}

func (i *Ingestor) store(ctx context.Context, value *Value, msg Message) error {
	name := value.contactName(msg.From)
	if name == "" {
		name = unknownContact
	}

	lead := &model.Lead{
		Name:              name,
		PhoneNumberHash:   HashPhone(msg.From),
		PhoneNumberMasked: MaskPhone(msg.From),
		LastMessage:       msg.Text.Body,
		Source:            model.DefaultLeadSource,
	}
	if err := i.leads.Upsert(ctx, lead); err != nil {
		return err
	}

	i.log.Info("Feedback saved",
		zap.String("phone", lead.PhoneNumberMasked),
		zap.String("message_id", msg.ID))
	return nil
}

func (i *Ingestor) reply(ctx context.Context, to string) {
	if !i.replier.Ready() {
		return
	}
	if _, err := i.replier.SendText(ctx, to, i.replyMessage); err != nil {
		i.log.Warn("Auto reply failed",
			zap.String("phone", MaskPhone(to)),
			zap.Error(err))
	}
}
