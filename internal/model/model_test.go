package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopJSON_RetailVariant(t *testing.T) {
	shop := Shop{
		ID:       "shop-1",
		Name:     "Campus Stationary",
		Category: CategoryStationary,
		Offering: Retail{Items: []InventoryItem{
			{ID: "item-1", Name: "Notebook", Price: decimal.NewFromInt(45), Available: true, Stock: 12},
		}},
	}

	data, err := json.Marshal(shop)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items"`)
	assert.NotContains(t, string(data), `"services"`)

	var got Shop
	require.NoError(t, json.Unmarshal(data, &got))
	retail, ok := got.Offering.(Retail)
	require.True(t, ok)
	require.Len(t, retail.Items, 1)
	assert.Equal(t, "item-1", retail.Items[0].ID)
	assert.True(t, retail.Items[0].Price.Equal(decimal.NewFromInt(45)))
}

func TestShopJSON_ServicesVariant(t *testing.T) {
	shop := Shop{
		ID:       "shop-3",
		Name:     "Mandi Salon Elite",
		Category: CategorySalon,
		Offering: Services{Services: []ServiceItem{
			{ID: "srv-1", Name: "Haircut (Classic)", Price: decimal.NewFromInt(150), Duration: "30 mins"},
		}},
	}

	data, err := json.Marshal(shop)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"services"`)
	assert.NotContains(t, string(data), `"items"`)

	var got Shop
	require.NoError(t, json.Unmarshal(data, &got))
	services, ok := got.Offering.(Services)
	require.True(t, ok)
	require.Len(t, services.Services, 1)
	assert.Equal(t, "srv-1", services.Services[0].ID)
}

func TestShopJSON_CategoryFallbackWhenBothAbsent(t *testing.T) {
	var retail Shop
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","category":"ELECTRONICS"}`), &retail))
	_, ok := retail.Offering.(Retail)
	assert.True(t, ok)

	var services Shop
	require.NoError(t, json.Unmarshal([]byte(`{"id":"y","category":"LAUNDRY"}`), &services))
	_, ok = services.Offering.(Services)
	assert.True(t, ok)
}

func TestAppointmentStartsAt(t *testing.T) {
	apt := Appointment{Date: "2026-03-14", TimeSlot: "15:30"}
	at, err := apt.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 15, 30, 0, 0, time.Local), at)

	apt.TimeSlot = "half past three"
	_, err = apt.StartsAt()
	assert.Error(t, err)
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, StatusRequested.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusOngoing.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusDeclined.Terminal())
}
