package notify

import (
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Группы подписчиков
const (
	GroupAdminBookings   = "admin_bookings"
	GroupAdminPayments   = "admin_payments"
	GroupAdminSpots      = "admin_spots"
	GroupAdminCars       = "admin_cars"
	GroupAdminAccessLogs = "admin_access_logs"
	GroupParkingUpdates  = "parking_updates"

	userGroupPrefix = "user_"
)

var adminGroups = map[domain.EventType]string{
	domain.EventBooking:   GroupAdminBookings,
	domain.EventPayment:   GroupAdminPayments,
	domain.EventSpot:      GroupAdminSpots,
	domain.EventCar:       GroupAdminCars,
	domain.EventAccessLog: GroupAdminAccessLogs,
}

// IsAdminGroup сообщает, что group - одна из групп администраторов
func IsAdminGroup(group string) bool {
	for _, g := range adminGroups {
		if g == group {
			return true
		}
	}
	return false
}

// UserGroup возвращает персональную группу пользователя
func UserGroup(userID int64) string {
	return userGroupPrefix + strconv.FormatInt(userID, 10)
}

// Route возвращает группы, которым доставляется событие
// Событие мест также уходит всем пользователям, событие с UserID - владельцу
func Route(event domain.Event) []string {
	groups := make([]string, 0, 3)

	if g, ok := adminGroups[event.Type]; ok {
		groups = append(groups, g)
	}
	if event.Type == domain.EventSpot {
		groups = append(groups, GroupParkingUpdates)
	}
	if event.UserID != nil {
		groups = append(groups, UserGroup(*event.UserID))
	}

	return groups
}
