package whatsapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fueldepot/internal/config"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	client "github.com/mamadbah2/fueldepot/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

func TestSendDailySummary(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{ManagerID: "224600000000"}, fc, nil)

	report := models.DailyReport{
		Date:      time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Employees: []string{"Ivanov"},
		Totals:    models.ShiftTotals{ReceivedL: 500, ReceivedKg: 370},
	}
	require.NoError(t, svc.SendDailySummary(context.Background(), report))

	require.Len(t, fc.sent, 1)
	assert.Equal(t, "224600000000", fc.sent[0].To)
	assert.Contains(t, fc.sent[0].Body, "2024-03-05")
	assert.Contains(t, fc.sent[0].Body, "Received: 500.00 L / 370.00 kg")
}

func TestSendDailySummaryWithoutManager(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, &fakeClient{}, nil)
	assert.ErrorIs(t, svc.SendDailySummary(context.Background(), models.DailyReport{}), ErrNoRecipient)
}

func TestSendOutbound(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, fc, nil)

	assert.Error(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: " "}))
	assert.ErrorIs(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{Message: "hi"}), ErrNoRecipient)

	fc.err = errors.New("boom")
	assert.Error(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "hi"}))
	assert.Empty(t, fc.sent)
}
