package service

import (
	"time"

	"github.com/noah-isme/campus-ops-api/internal/models"
)

// AttendanceService derives presence and dashboard counts from a leave
// record set. Its methods are pure functions of their inputs so they stay
// independently testable; no store access happens here.
type AttendanceService struct {
	now func() time.Time
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService() *AttendanceService {
	return &AttendanceService{now: time.Now}
}

// OnLeave reports whether the person has an approved leave spanning date.
func (s *AttendanceService) OnLeave(records []models.LeaveRecord, personID string, date time.Time) bool {
	for _, record := range records {
		if record.RequesterID != personID {
			continue
		}
		if record.Status == models.LeaveStatusApproved && record.Covers(date) {
			return true
		}
	}
	return false
}

// PartitionRoster splits a roster into present and absent members for a
// date. Every roster member lands in exactly one partition.
func (s *AttendanceService) PartitionRoster(records []models.LeaveRecord, roster []string, date time.Time) models.RosterPartition {
	partition := models.RosterPartition{
		Date:    models.DateOnly(date),
		Present: make([]string, 0, len(roster)),
		Absent:  make([]string, 0),
	}
	for _, personID := range roster {
		if s.OnLeave(records, personID, date) {
			partition.Absent = append(partition.Absent, personID)
		} else {
			partition.Present = append(partition.Present, personID)
		}
	}
	return partition
}

// Stats rolls up dashboard counts for the record set as of now. Monthly
// counts key on SubmittedAt falling in now's local calendar month and year.
func (s *AttendanceService) Stats(records []models.LeaveRecord, roster []string, now time.Time) models.LeaveStats {
	stats := models.LeaveStats{RosterSize: len(roster)}

	onLeave := make(map[string]struct{})
	for _, record := range records {
		if record.Status == models.LeaveStatusApproved && record.Covers(now) {
			onLeave[record.RequesterID] = struct{}{}
		}
		switch record.Status {
		case models.LeaveStatusPending:
			stats.Pending++
		case models.LeaveStatusApproved:
			if sameMonth(record.SubmittedAt, now) {
				stats.ApprovedMonth++
			}
		case models.LeaveStatusRejected:
			if sameMonth(record.SubmittedAt, now) {
				stats.RejectedMonth++
			}
		}
	}
	stats.OnLeaveToday = len(onLeave)
	return stats
}

func sameMonth(a, b time.Time) bool {
	al, bl := a.Local(), b.Local()
	return al.Year() == bl.Year() && al.Month() == bl.Month()
}
