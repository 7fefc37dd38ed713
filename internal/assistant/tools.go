// Package assistant implements the voice-assistant tool boundary. The
// audio/live-session side lives in an external service; it invokes these
// named tools and receives a {result}/{error} envelope, never a transport
// error, for anything the user can be told about (unknown shop, past date).
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/model"
	"github.com/campusone/campus-hub-api/internal/service"
)

const (
	ToolCheckItemAvailability = "check_item_availability"
	ToolNavigateToShop        = "navigate_to_shop"
	ToolBookAppointment       = "book_appointment"
	ToolGoToSleep             = "go_to_sleep"
)

type Assistant struct {
	shops        *service.ShopService
	appointments *service.AppointmentService

	// onSleep is invoked when the assistant is told to stand by; the
	// external session owner uses it to close the live connection.
	onSleep func()
}

func New(shops *service.ShopService, appointments *service.AppointmentService, onSleep func()) *Assistant {
	if onSleep == nil {
		onSleep = func() {}
	}
	return &Assistant{shops: shops, appointments: appointments, onSleep: onSleep}
}

// Invoke dispatches a tool call on behalf of the calling user.
func (a *Assistant) Invoke(ctx context.Context, caller model.User, call dto.ToolCallRequest) dto.ToolCallResponse {
	args := call.Args
	if args == nil {
		args = map[string]string{}
	}
	switch call.Name {
	case ToolCheckItemAvailability:
		return a.checkItemAvailability(args["shopName"], args["itemName"])
	case ToolNavigateToShop:
		return a.navigateToShop(args["shopName"])
	case ToolBookAppointment:
		return a.bookAppointment(ctx, caller, args)
	case ToolGoToSleep:
		a.onSleep()
		return dto.ToolCallResponse{Result: "Shutting down. Moving to standby."}
	default:
		return dto.ToolCallResponse{Error: fmt.Sprintf("Unknown tool %q.", call.Name)}
	}
}

func (a *Assistant) checkItemAvailability(shopName, itemName string) dto.ToolCallResponse {
	shop, err := a.shops.FindByName(shopName)
	if err != nil {
		return dto.ToolCallResponse{Error: fmt.Sprintf("Shop %q not found.", shopName)}
	}
	retail, ok := shop.Offering.(model.Retail)
	if !ok {
		return dto.ToolCallResponse{Error: fmt.Sprintf("%s does not stock items.", shop.Name)}
	}
	needle := strings.ToLower(itemName)
	for _, item := range retail.Items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			state := "out of stock"
			if item.Available {
				state = "available"
			}
			return dto.ToolCallResponse{Result: fmt.Sprintf(
				"%s is %s in %s. Price is ₹%s. Stock: %d.",
				item.Name, state, shop.Name, item.Price.String(), item.Stock)}
		}
	}
	return dto.ToolCallResponse{Error: fmt.Sprintf("Item %q not found in %s.", itemName, shop.Name)}
}

func (a *Assistant) navigateToShop(shopName string) dto.ToolCallResponse {
	lowered := strings.ToLower(shopName)
	if lowered == "home" || lowered == "dashboard" {
		return dto.ToolCallResponse{Result: "Navigated to the main dashboard."}
	}
	shop, err := a.shops.FindByName(shopName)
	if err != nil {
		return dto.ToolCallResponse{Error: fmt.Sprintf("I couldn't find a shop named %q.", shopName)}
	}
	return dto.ToolCallResponse{Result: fmt.Sprintf("Success. Opened %s view on your display.", shop.Name)}
}

// bookAppointment routes through the same booking path as the direct form:
// identical date validation, identical zero-side-effect rejection.
func (a *Assistant) bookAppointment(ctx context.Context, caller model.User, args map[string]string) dto.ToolCallResponse {
	shop, err := a.shops.FindByName(args["shopName"])
	if err != nil {
		return dto.ToolCallResponse{Error: fmt.Sprintf("Shop %q not found.", args["shopName"])}
	}
	services, ok := shop.Offering.(model.Services)
	if !ok {
		return dto.ToolCallResponse{Error: fmt.Sprintf("%s does not take bookings.", shop.Name)}
	}
	var svc *model.ServiceItem
	needle := strings.ToLower(args["serviceName"])
	for i := range services.Services {
		if strings.Contains(strings.ToLower(services.Services[i].Name), needle) {
			svc = &services.Services[i]
			break
		}
	}
	if svc == nil {
		return dto.ToolCallResponse{Error: fmt.Sprintf("Service %q not found in %s.", args["serviceName"], shop.Name)}
	}

	apt, err := a.appointments.Book(ctx, caller, dto.BookAppointmentRequest{
		ShopID:    shop.ID,
		ServiceID: svc.ID,
		Date:      args["date"],
		TimeSlot:  args["time"],
		Phone:     args["phone"],
	})
	if err != nil {
		return dto.ToolCallResponse{Error: fmt.Sprintf("Rejected. %v.", err)}
	}
	return dto.ToolCallResponse{Result: fmt.Sprintf(
		"Success. Booked %s at %s for %s at %s. Notification synced.",
		apt.ServiceName, shop.Name, apt.Date, apt.TimeSlot)}
}
