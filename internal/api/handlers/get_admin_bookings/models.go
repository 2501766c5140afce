package get_admin_bookings

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// status можно передать несколько раз или списком через запятую
func ToServiceRequest(r *http.Request) (*models.GetAdminBookingsRequest, error) {
	query := r.URL.Query()

	req := &models.GetAdminBookingsRequest{
		Search: strings.TrimSpace(query.Get("search")),
	}

	for _, raw := range query["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Statuses = append(req.Statuses, s)
			}
		}
	}

	var err error
	if req.Page, err = handlers.QueryInt(r, "page"); err != nil {
		return nil, err
	}
	if req.PageSize, err = handlers.QueryInt(r, "pageSize"); err != nil {
		return nil, err
	}

	return req, nil
}
