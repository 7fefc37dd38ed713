package assistant

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/model"
	"github.com/campusone/campus-hub-api/internal/relay"
	"github.com/campusone/campus-hub-api/internal/service"
	"github.com/campusone/campus-hub-api/internal/store"
)

type noopNotifier struct{}

func (noopNotifier) Dispatch(context.Context, relay.Kind, string, string, string) relay.LogEntry {
	return relay.LogEntry{}
}

func newAssistant(t *testing.T, onSleep func()) (*Assistant, model.User) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	activity, err := service.NewActivityLog(ctx, st, log)
	require.NoError(t, err)
	shops, err := service.NewShopService(ctx, st, log)
	require.NoError(t, err)
	appointments, err := service.NewAppointmentService(ctx, st, shops, noopNotifier{}, activity, log)
	require.NoError(t, err)

	caller := model.User{ID: uuid.New(), Name: "Adarsh Kumar", Email: "a@x.com", Role: model.RoleUser}
	return New(shops, appointments, onSleep), caller
}

func TestAssistant_CheckItemAvailability(t *testing.T) {
	a, caller := newAssistant(t, nil)
	ctx := context.Background()

	resp := a.Invoke(ctx, caller, dto.ToolCallRequest{
		Name: ToolCheckItemAvailability,
		Args: map[string]string{"shopName": "stationary", "itemName": "gel pen"},
	})
	assert.Empty(t, resp.Error)
	assert.Contains(t, resp.Result, "Blue Gel Pen is available")
	assert.Contains(t, resp.Result, "Stock: 120")

	resp = a.Invoke(ctx, caller, dto.ToolCallRequest{
		Name: ToolCheckItemAvailability,
		Args: map[string]string{"shopName": "stationary", "itemName": "hoverboard"},
	})
	assert.Empty(t, resp.Result)
	assert.Contains(t, resp.Error, "not found")

	resp = a.Invoke(ctx, caller, dto.ToolCallRequest{
		Name: ToolCheckItemAvailability,
		Args: map[string]string{"shopName": "bakery", "itemName": "bread"},
	})
	assert.Contains(t, resp.Error, "not found")
}

func TestAssistant_NavigateToShop(t *testing.T) {
	a, caller := newAssistant(t, nil)
	ctx := context.Background()

	resp := a.Invoke(ctx, caller, dto.ToolCallRequest{
		Name: ToolNavigateToShop, Args: map[string]string{"shopName": "home"},
	})
	assert.Equal(t, "Navigated to the main dashboard.", resp.Result)

	resp = a.Invoke(ctx, caller, dto.ToolCallRequest{
		Name: ToolNavigateToShop, Args: map[string]string{"shopName": "laundry"},
	})
	assert.Contains(t, resp.Result, "Tumbler Laundry Services")
}

func TestAssistant_BookAppointment(t *testing.T) {
	a, caller := newAssistant(t, nil)
	ctx := context.Background()
	tomorrow := time.Now().AddDate(0, 0, 1).Format(model.DateLayout)

	resp := a.Invoke(ctx, caller, dto.ToolCallRequest{
		Name: ToolBookAppointment,
		Args: map[string]string{
			"shopName": "salon", "serviceName": "haircut",
			"date": tomorrow, "time": "15:30", "phone": "9876543210",
		},
	})
	assert.Empty(t, resp.Error)
	assert.Contains(t, resp.Result, "Booked Haircut (Classic) at Mandi Salon Elite")
}

func TestAssistant_BookAppointment_PastDateRejected(t *testing.T) {
	a, caller := newAssistant(t, nil)
	ctx := context.Background()
	yesterday := time.Now().AddDate(0, 0, -1).Format(model.DateLayout)

	resp := a.Invoke(ctx, caller, dto.ToolCallRequest{
		Name: ToolBookAppointment,
		Args: map[string]string{
			"shopName": "salon", "serviceName": "haircut",
			"date": yesterday, "time": "15:30", "phone": "9876543210",
		},
	})
	assert.Empty(t, resp.Result)
	assert.Contains(t, resp.Error, "past")
}

func TestAssistant_GoToSleep(t *testing.T) {
	slept := false
	a, caller := newAssistant(t, func() { slept = true })

	resp := a.Invoke(context.Background(), caller, dto.ToolCallRequest{Name: ToolGoToSleep})
	assert.NotEmpty(t, resp.Result)
	assert.True(t, slept)
}

func TestAssistant_UnknownTool(t *testing.T) {
	a, caller := newAssistant(t, nil)

	resp := a.Invoke(context.Background(), caller, dto.ToolCallRequest{Name: "warp_drive"})
	assert.Contains(t, resp.Error, "Unknown tool")
}
