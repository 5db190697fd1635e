package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/foodbridge/match-api/internal/domain/geo"
	"github.com/google/uuid"
)

// Errors describing an unusable match request message
var (
	ErrMalformedMessage    = errors.New("malformed match request message")
	ErrMissingTaskID       = errors.New("match request has no task_id")
	ErrMissingVolunteerID  = errors.New("match request has no valid volunteer_id")
	ErrMissingDonationID   = errors.New("match request has no valid donation_id")
	ErrMissingCoordinates  = errors.New("match request has no valid donation coordinates")
	ErrMissingDonationName = errors.New("match request has no donation_name")
)

// MatchRequest is the queue message asking for recipients for one donation.
// Identifiers travel as strings so a message with a bad field can still be
// tied to its task.
type MatchRequest struct {
	TaskID       string   `json:"task_id"`
	VolunteerID  string   `json:"volunteer_id"`
	DonationID   string   `json:"donation_id"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	DonationName string   `json:"donation_name"`
}

// MatchJob is a fully validated MatchRequest.
type MatchJob struct {
	TaskID       uuid.UUID
	VolunteerID  uuid.UUID
	DonationID   uuid.UUID
	Origin       geo.Point
	DonationName string
}

// NewMatchRequest builds the message for a job.
func NewMatchRequest(taskID, volunteerID, donationID uuid.UUID, origin geo.Point, donationName string) MatchRequest {
	lat, lon := origin.Lat, origin.Lon
	return MatchRequest{
		TaskID:       taskID.String(),
		VolunteerID:  volunteerID.String(),
		DonationID:   donationID.String(),
		Latitude:     &lat,
		Longitude:    &lon,
		DonationName: donationName,
	}
}

// Encode serializes the request as JSON.
func (m MatchRequest) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeMatchRequest parses a message body. Only JSON syntax is checked here;
// use TaskUUID and Job for field validation.
func DecodeMatchRequest(body []byte) (MatchRequest, error) {
	var m MatchRequest
	if err := json.Unmarshal(body, &m); err != nil {
		return MatchRequest{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return m, nil
}

// TaskUUID returns the task identifier, which must be present before anything
// about the request can be recorded.
func (m MatchRequest) TaskUUID() (uuid.UUID, error) {
	raw := strings.TrimSpace(m.TaskID)
	if raw == "" {
		return uuid.Nil, ErrMissingTaskID
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a task identifier", ErrMissingTaskID, raw)
	}
	return id, nil
}

// Job validates every field. On error the returned job still carries
// whichever identifiers did parse.
func (m MatchRequest) Job() (MatchJob, error) {
	var job MatchJob

	taskID, err := m.TaskUUID()
	if err != nil {
		return job, err
	}
	job.TaskID = taskID

	var errs []error
	if id, err := uuid.Parse(strings.TrimSpace(m.VolunteerID)); err == nil && id != uuid.Nil {
		job.VolunteerID = id
	} else {
		errs = append(errs, ErrMissingVolunteerID)
	}
	if id, err := uuid.Parse(strings.TrimSpace(m.DonationID)); err == nil && id != uuid.Nil {
		job.DonationID = id
	} else {
		errs = append(errs, ErrMissingDonationID)
	}
	if p, ok := geo.PointFrom(m.Latitude, m.Longitude); ok {
		job.Origin = p
	} else {
		errs = append(errs, ErrMissingCoordinates)
	}
	if name := strings.TrimSpace(m.DonationName); name != "" {
		job.DonationName = name
	} else {
		errs = append(errs, ErrMissingDonationName)
	}

	return job, errors.Join(errs...)
}
