package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"gopkg.in/gomail.v2"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/service/inventory"
	"github.com/aniketdange3/dental-clinic-api/pkg/logger"
)

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	From         string
	To           string
	DedupeWindow time.Duration
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// AlertService mails a notice when inventory items fall to or below their
// low stock threshold. An item is alerted at most once per dedupe window
// so a stagnant stock level does not spam the recipient.
type AlertService struct {
	inventory inventory.InventoryService
	dialer    sender
	config    Config
	logger    *logger.Logger
	alerted   *cache.Cache
}

func NewAlertService(inv inventory.InventoryService, cfg Config, log *logger.Logger) *AlertService {
	if cfg.DedupeWindow <= 0 {
		cfg.DedupeWindow = 24 * time.Hour
	}
	return &AlertService{
		inventory: inv,
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		config:    cfg,
		logger:    log,
		alerted:   cache.New(cfg.DedupeWindow, 10*time.Minute),
	}
}

// Sweep checks the inventory and sends a single digest mail covering every
// item that is newly low on stock.
func (s *AlertService) Sweep(ctx context.Context) error {
	items, err := s.inventory.ListLowStockItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list low stock items: %w", err)
	}

	var due []*model.InventoryItem
	for _, item := range items {
		if _, seen := s.alerted.Get(item.ID.String()); seen {
			continue
		}
		due = append(due, item)
	}
	if len(due) == 0 {
		return nil
	}

	if err := s.send(due); err != nil {
		return fmt.Errorf("failed to send low stock alert: %w", err)
	}

	for _, item := range due {
		s.alerted.SetDefault(item.ID.String(), true)
	}
	s.logger.Info("Sent low stock alert", "items", len(due))
	return nil
}

func (s *AlertService) send(items []*model.InventoryItem) error {
	var body strings.Builder
	body.WriteString("The following inventory items are low on stock:\n\n")
	for _, item := range items {
		fmt.Fprintf(&body, "- %s: %d remaining (threshold %d)\n",
			item.Name, item.Quantity, item.LowStockThreshold)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", s.config.To)
	m.SetHeader("Subject", fmt.Sprintf("Low stock alert: %d item(s)", len(items)))
	m.SetBody("text/plain", body.String())

	return s.dialer.DialAndSend(m)
}

// Run sweeps on the given interval until the context is cancelled.
func (s *AlertService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error(err, "Low stock sweep failed")
			}
		}
	}
}
