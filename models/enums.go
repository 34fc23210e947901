package models

import (
	"errors"
	"strings"
)

type UserRole string

const (
	UserRoleSales   UserRole = "SALES"
	UserRoleManager UserRole = "MANAGER"
)

var userRoles = map[string]UserRole{
	"SALES":   UserRoleSales,
	"MANAGER": UserRoleManager,
}

func ParseUserRole(s string) (UserRole, error) {
	r, ok := userRoles[strings.TrimSpace(s)]
	if !ok {
		return "", errors.New("invalid user role")
	}
	return r, nil
}

func (r UserRole) IsValid() bool {
	_, ok := userRoles[string(r)]
	return ok
}

type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "DRAFT"
	ReportStatusSubmitted ReportStatus = "SUBMITTED"
	ReportStatusReviewed  ReportStatus = "REVIEWED"
)

var reportStatuses = map[string]ReportStatus{
	"DRAFT":     ReportStatusDraft,
	"SUBMITTED": ReportStatusSubmitted,
	"REVIEWED":  ReportStatusReviewed,
}

func ParseReportStatus(s string) (ReportStatus, error) {
	st, ok := reportStatuses[strings.TrimSpace(s)]
	if !ok {
		return "", errors.New("invalid report status")
	}
	return st, nil
}

// IsEditableInput reports whether a status may be supplied directly on create/update.
// REVIEWED is reachable only through review.
func (s ReportStatus) IsEditableInput() bool {
	return s == ReportStatusDraft || s == ReportStatusSubmitted
}

type CommentTarget string

const (
	CommentTargetProblem CommentTarget = "PROBLEM"
	CommentTargetPlan    CommentTarget = "PLAN"
)

func (t CommentTarget) IsValid() bool {
	return t == CommentTargetProblem || t == CommentTargetPlan
}

type ReportEventType string

const (
	ReportEventSubmitted      ReportEventType = "REPORT_SUBMITTED"
	ReportEventReviewed       ReportEventType = "REPORT_REVIEWED"
	ReportEventCommentCreated ReportEventType = "COMMENT_CREATED"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ParseSortOrder returns def for an empty value; any other value but "asc" is desc.
func ParseSortOrder(s string, def SortOrder) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def
	case "asc":
		return SortOrderAsc
	default:
		return SortOrderDesc
	}
}
