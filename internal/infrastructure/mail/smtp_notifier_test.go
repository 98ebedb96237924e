package mail_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/mail"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func body(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSendVarianceAlert(t *testing.T) {
	s := &fakeSender{}
	n := mail.NewSMTPNotifierWithSender(s, "noreply@test.com", nil)

	alert := dto.VarianceAlert{
		CompanyCode:   "testco",
		ContainerName: "Caja 1",
		Target:        decimal.RequireFromString("500"),
		PosThreshold:  decimal.RequireFromString("5"),
		NegThreshold:  decimal.RequireFromString("2"),
		Variance:      decimal.RequireFromString("6"),
		Count:         entity.Count{Cash: decimal.RequireFromString("506"), Time: "hoy"},
		UserName:      "Bob Testy",
	}
	err := n.SendVarianceAlert(context.Background(), &entity.User{ID: "barb", Email: "barb@test.com", FirstName: "Barb"}, alert)
	require.NoError(t, err)
	require.Len(t, s.sent, 1)

	assert.Equal(t, []string{"barb@test.com"}, s.sent[0].GetHeader("To"))
	assert.Contains(t, s.sent[0].GetHeader("Subject")[0], "Caja 1")
	assert.Contains(t, body(t, s.sent[0]), "Bob Testy")
}

func TestSendPasswordReset_TransportFailureIsDependencyError(t *testing.T) {
	n := mail.NewSMTPNotifierWithSender(&fakeSender{err: errors.New("conexión rechazada")}, "noreply@test.com", nil)
	err := n.SendPasswordReset(context.Background(), &entity.User{ID: "bob", Email: "bob@test.com"}, "abc123XYZ9")
	assert.ErrorIs(t, err, domain.ErrDependency)
}

func TestSend_RecipientWithoutEmail(t *testing.T) {
	s := &fakeSender{}
	n := mail.NewSMTPNotifierWithSender(s, "noreply@test.com", nil)
	err := n.SendPasswordReset(context.Background(), &entity.User{ID: "bob"}, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.sent)
}
