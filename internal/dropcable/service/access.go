package service

import (
	"context"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	"github.com/fiberafrica/missioncontrol/internal/providers/email"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"go.uber.org/zap"
)

// SendAccessRequest emails the end client asking for site access. The
// recipient defaults to the order's end-client contact.
func (s *Service) SendAccessRequest(ctx context.Context, req domain.AccessRequest) error {
	order, err := s.Get(ctx, req.OrderID)
	if err != nil {
		return err
	}

	to := strings.TrimSpace(req.To)
	if to == "" {
		to = nullable.Value(order.EndClientContactEmail)
	}
	if to == "" {
		return domain.ErrMissingRecipient
	}
	if !validEmail(to) {
		return domain.ErrInvalidEmail
	}

	contact := strings.TrimSpace(req.ContactName)
	if contact == "" {
		contact = nullable.Value(order.EndClientContactName)
	}

	data := map[string]any{
		"contact_name":   contact,
		"circuit_number": order.CircuitNumber,
		"site_name":      order.SiteBName,
		"address":        nullable.Value(order.PhysicalAddressSiteB),
		"requested_date": strings.TrimSpace(req.RequestedDate),
		"message":        strings.TrimSpace(req.Message),
		"sender_name":    strings.TrimSpace(req.SenderName),
		"subject":        "Site access request: " + order.CircuitNumber,
	}
	if err := s.email.SendTemplate(ctx, []string{to}, email.TemplateAccessRequest, data); err != nil {
		logger.WithOrder(s.log, orderKind, order.ID).Error("access request email failed", zap.Error(err))
		return err
	}

	logger.WithOrder(s.log, orderKind, order.ID).Info("access request sent")
	s.record(ctx, "drop_cable.access_requested", order.ID, "Site access requested", map[string]any{
		"email": to,
	})
	return nil
}
