package validate_qr

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ParkingService/pkg/qrsign"
)

var validate = validator.New()

// parsePayload разбирает и проверяет данные QR-кода по схеме
func parsePayload(raw string) (*parsedPayload, error) {
	var payload Payload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	bookingID, err := strconv.ParseInt(payload.BookingID, 10, 64)
	if err != nil || bookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id must be a positive integer", ErrInvalidFormat)
	}

	startTime, err := parseCanonicalTime(payload.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", ErrInvalidFormat, err)
	}

	endTime, err := parseCanonicalTime(payload.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidFormat, err)
	}

	return &parsedPayload{
		BookingID: bookingID,
		StartTime: startTime.UTC(),
		EndTime:   endTime.UTC(),
		Signature: strings.ToLower(payload.Signature),
	}, nil
}

// parseCanonicalTime принимает только время в UTC с точностью до секунды.
// time.Parse допускает дробные секунды даже без них в формате, поэтому значение сверяется повторным форматированием
func parseCanonicalTime(value string) (time.Time, error) {
	t, err := time.Parse(qrsign.TimeLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	if t.Format(qrsign.TimeLayout) != value {
		return time.Time{}, fmt.Errorf("%q is not in %s form", value, qrsign.TimeLayout)
	}
	return t, nil
}

// isWithin проверяет, что now лежит в интервале [start, end]
func isWithin(now, start, end time.Time) bool {
	return !now.Before(start) && !now.After(end)
}
