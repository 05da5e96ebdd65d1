package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/fyp-coordination-api/internal/models"
	"github.com/campushq/fyp-coordination-api/internal/repository"
	appErrors "github.com/campushq/fyp-coordination-api/pkg/errors"
)

type meetingRepo interface {
	FindOverlapping(ctx context.Context, venue string, start, end time.Time, excludeID string) ([]models.Meeting, error)
	ListScheduledAll(ctx context.Context) ([]models.Meeting, error)
	ListScheduledForTeacher(ctx context.Context, teacherID string) ([]models.Meeting, error)
	ListScheduledForStudent(ctx context.Context, studentID string) ([]models.Meeting, error)
	Create(ctx context.Context, meeting *models.Meeting) error
}

type proposalReader interface {
	FindApprovedByGroup(ctx context.Context, groupID string) (*models.Proposal, error)
	ListApproved(ctx context.Context) ([]models.Proposal, error)
	ListApprovedBySupervisor(ctx context.Context, supervisorID string) ([]models.Proposal, error)
}

type studentReader interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Student, error)
	ListByRollNumbers(ctx context.Context, rollNumbers []string) ([]models.Student, error)
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
}

type teacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Teacher, error)
}

type meetingNotifier interface {
	MeetingScheduled(meeting *models.Meeting)
}

type directoryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const (
	cacheKeyEligibleGroups      = "directory:eligible-groups"
	cacheKeySupervisorGroupsFmt = "directory:supervisor-groups:%s"
)

// ScheduleMeetingRequest is the booking payload. Times are RFC 3339 strings
// so that format errors can be reported separately from interval errors.
type ScheduleMeetingRequest struct {
	GroupID   string `json:"group_id"`
	Venue     string `json:"venue"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CheckAvailabilityRequest probes a venue for a candidate interval without
// booking it. ExcludeMeetingID lets reschedule flows ignore their own slot.
type CheckAvailabilityRequest struct {
	Venue            string `json:"venue"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	ExcludeMeetingID string `json:"exclude_meeting_id,omitempty"`
}

// MeetingService orchestrates venue booking: request validation, eligibility
// and authorization, conflict detection and participant snapshotting.
type MeetingService struct {
	meetings  meetingRepo
	proposals proposalReader
	students  studentReader
	teachers  teacherReader
	notifier  meetingNotifier
	cache     directoryCache
	venues    []string
	venueSet  map[string]struct{}
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMeetingService constructs MeetingService. venues is the fixed registry
// of bookable rooms; notifier and cache may be nil.
func NewMeetingService(meetings meetingRepo, proposals proposalReader, students studentReader, teachers teacherReader, notifier meetingNotifier, cache directoryCache, venues []string, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *MeetingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	venueSet := make(map[string]struct{}, len(venues))
	for _, v := range venues {
		venueSet[v] = struct{}{}
	}
	return &MeetingService{
		meetings:  meetings,
		proposals: proposals,
		students:  students,
		teachers:  teachers,
		notifier:  notifier,
		cache:     cache,
		venues:    venues,
		venueSet:  venueSet,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
	}
}

// Venues returns the bookable venue registry.
func (s *MeetingService) Venues() []string {
	out := make([]string, len(s.venues))
	copy(out, s.venues)
	return out
}

// Schedule books a meeting for a group. Validation failures are reported in
// a fixed order: missing fields, date format, interval, venue, eligibility,
// authorization, roster, then conflicts. Exactly one of the FYP team or the
// group's assigned supervisor may book; a co-advisor is attached to the
// snapshot only for FYP-team bookings.
func (s *MeetingService) Schedule(ctx context.Context, claims *models.JWTClaims, req ScheduleMeetingRequest) (*models.MeetingDetail, error) {
	if req.GroupID == "" || req.Venue == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingFields, "group_id, venue, start_time and end_time are required")
	}

	start, end, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, ok := s.venueSet[req.Venue]; !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownVenue, fmt.Sprintf("unknown venue %q, available venues: %s", req.Venue, strings.Join(s.venues, ", ")))
	}

	proposal, err := s.proposals.FindApprovedByGroup(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrGroupNotEligible, fmt.Sprintf("group %s has no approved proposal with an assigned supervisor", req.GroupID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group proposal")
	}

	isFYPTeam := claims.Role == models.RoleFYPTeam
	isSupervisor := claims.Role == models.RoleTeacher && proposal.SupervisorID != nil && *proposal.SupervisorID == claims.UserID
	if !isFYPTeam && !isSupervisor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the FYP team or the group's assigned supervisor can schedule meetings")
	}

	roster, err := s.students.ListByRollNumbers(ctx, proposal.MemberRollNumbers)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve group members")
	}
	if missing := missingRollNumbers(proposal.MemberRollNumbers, roster); len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrMembersNotFound, fmt.Sprintf("group members not found: %s", strings.Join(missing, ", ")))
	}

	conflicts, err := s.meetings.FindOverlapping(ctx, req.Venue, start, end, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check venue availability")
	}
	if len(conflicts) > 0 {
		return nil, venueConflictError(conflicts[0])
	}

	studentIDs := make([]string, 0, len(roster))
	for _, st := range roster {
		studentIDs = append(studentIDs, st.ID)
	}

	meeting := &models.Meeting{
		GroupID:      proposal.GroupID,
		ProjectTitle: proposal.ProjectTitle,
		Venue:        req.Venue,
		StartTime:    start,
		EndTime:      end,
		StudentIDs:   studentIDs,
		SupervisorID: *proposal.SupervisorID,
		Status:       models.MeetingScheduled,
	}
	// Co-advisors only attend FYP-team sessions; supervisor bookings are
	// their own meetings with the group.
	if isFYPTeam && proposal.CoAdvisorID != nil {
		coAdvisorID := *proposal.CoAdvisorID
		meeting.CoAdvisorID = &coAdvisorID
	}
	meeting.SetCreatedBy(models.UserActor(claims.UserID))

	if err := s.meetings.Create(ctx, meeting); err != nil {
		if errors.Is(err, repository.ErrMeetingOverlap) {
			// A concurrent booking won the slot between the advisory
			// check and the insert; re-read for an accurate message.
			if lost, lerr := s.meetings.FindOverlapping(ctx, req.Venue, start, end, ""); lerr == nil && len(lost) > 0 {
				return nil, venueConflictError(lost[0])
			}
			return nil, appErrors.Clone(appErrors.ErrVenueConflict, fmt.Sprintf("venue %s is already booked for this interval", req.Venue))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create meeting")
	}

	detail, err := s.expandMeeting(ctx, meeting)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.MeetingScheduled(meeting)
	}

	s.logger.Sugar().Infow("meeting scheduled",
		"meeting_id", meeting.ID,
		"group_id", meeting.GroupID,
		"venue", meeting.Venue,
		"start_time", meeting.StartTime,
		"end_time", meeting.EndTime,
	)
	return detail, nil
}

// CheckAvailability reports whether a venue is free for an interval, using
// the same overlap predicate as Schedule. A positive answer is advisory: a
// later booking can still lose the slot to a concurrent writer.
func (s *MeetingService) CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) (*models.VenueAvailability, error) {
	if req.Venue == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingFields, "venue, start_time and end_time are required")
	}

	start, end, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, ok := s.venueSet[req.Venue]; !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownVenue, fmt.Sprintf("unknown venue %q, available venues: %s", req.Venue, strings.Join(s.venues, ", ")))
	}

	overlapping, err := s.meetings.FindOverlapping(ctx, req.Venue, start, end, req.ExcludeMeetingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check venue availability")
	}

	availability := &models.VenueAvailability{Available: len(overlapping) == 0}
	for _, m := range overlapping {
		availability.Conflicts = append(availability.Conflicts, conflictOf(m))
	}
	return availability, nil
}

// ListScheduled returns scheduled meetings visible to the caller: everything
// for the FYP team, supervised or co-advised meetings for teachers, and own
// meetings for students.
func (s *MeetingService) ListScheduled(ctx context.Context, claims *models.JWTClaims) ([]models.MeetingDetail, error) {
	var (
		meetings []models.Meeting
		err      error
	)
	switch claims.Role {
	case models.RoleFYPTeam:
		meetings, err = s.meetings.ListScheduledAll(ctx)
	case models.RoleTeacher:
		meetings, err = s.meetings.ListScheduledForTeacher(ctx, claims.UserID)
	case models.RoleStudent:
		student, serr := s.students.FindByUserID(ctx, claims.UserID)
		if serr != nil {
			if errors.Is(serr, sql.ErrNoRows) {
				return []models.MeetingDetail{}, nil
			}
			return nil, appErrors.Wrap(serr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student record")
		}
		meetings, err = s.meetings.ListScheduledForStudent(ctx, student.ID)
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "unknown role")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list meetings")
	}

	return s.expandMeetings(ctx, meetings)
}

// EligibleGroups returns every approved, supervised proposal with its roster
// resolved. Results are cached; the cache is read-through and best-effort.
func (s *MeetingService) EligibleGroups(ctx context.Context) ([]models.EligibleGroup, error) {
	if s.cache != nil {
		var cached []models.EligibleGroup
		if err := s.cache.Get(ctx, cacheKeyEligibleGroups, &cached); err == nil {
			return cached, nil
		}
	}

	proposals, err := s.proposals.ListApproved(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list eligible groups")
	}

	groups, err := s.resolveGroups(ctx, proposals)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyEligibleGroups, groups, s.cacheTTL); err != nil {
			s.logger.Sugar().Warnw("eligible groups cache write failed", "error", err)
		}
	}
	return groups, nil
}

// SupervisorGroups returns the groups the calling teacher supervises.
func (s *MeetingService) SupervisorGroups(ctx context.Context, claims *models.JWTClaims) ([]models.EligibleGroup, error) {
	key := fmt.Sprintf(cacheKeySupervisorGroupsFmt, claims.UserID)
	if s.cache != nil {
		var cached []models.EligibleGroup
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	proposals, err := s.proposals.ListApprovedBySupervisor(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list supervised groups")
	}

	groups, err := s.resolveGroups(ctx, proposals)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, groups, s.cacheTTL); err != nil {
			s.logger.Sugar().Warnw("supervisor groups cache write failed", "error", err)
		}
	}
	return groups, nil
}

func (s *MeetingService) resolveGroups(ctx context.Context, proposals []models.Proposal) ([]models.EligibleGroup, error) {
	rollSet := make(map[string]struct{})
	teacherSet := make(map[string]struct{})
	for _, p := range proposals {
		for _, roll := range p.MemberRollNumbers {
			rollSet[roll] = struct{}{}
		}
		if p.SupervisorID != nil {
			teacherSet[*p.SupervisorID] = struct{}{}
		}
		if p.CoAdvisorID != nil {
			teacherSet[*p.CoAdvisorID] = struct{}{}
		}
	}

	studentsByRoll, err := s.studentsByRollNumber(ctx, keysOf(rollSet))
	if err != nil {
		return nil, err
	}
	teachersByID, err := s.teachersByID(ctx, keysOf(teacherSet))
	if err != nil {
		return nil, err
	}

	groups := make([]models.EligibleGroup, 0, len(proposals))
	for _, p := range proposals {
		group := models.EligibleGroup{
			GroupID:      p.GroupID,
			ProjectTitle: p.ProjectTitle,
		}
		if p.SupervisorID != nil {
			if t, ok := teachersByID[*p.SupervisorID]; ok {
				group.Supervisor = teacherRefOf(t)
			}
		}
		if p.CoAdvisorID != nil {
			if t, ok := teachersByID[*p.CoAdvisorID]; ok {
				ref := teacherRefOf(t)
				group.CoAdvisor = &ref
			}
		}
		for _, roll := range p.MemberRollNumbers {
			if st, ok := studentsByRoll[roll]; ok {
				group.Members = append(group.Members, studentRefOf(st))
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *MeetingService) expandMeetings(ctx context.Context, meetings []models.Meeting) ([]models.MeetingDetail, error) {
	studentSet := make(map[string]struct{})
	teacherSet := make(map[string]struct{})
	for _, m := range meetings {
		for _, id := range m.StudentIDs {
			studentSet[id] = struct{}{}
		}
		teacherSet[m.SupervisorID] = struct{}{}
		if m.CoAdvisorID != nil {
			teacherSet[*m.CoAdvisorID] = struct{}{}
		}
	}

	studentsByID, err := s.studentsByID(ctx, keysOf(studentSet))
	if err != nil {
		return nil, err
	}
	teachersByID, err := s.teachersByID(ctx, keysOf(teacherSet))
	if err != nil {
		return nil, err
	}

	details := make([]models.MeetingDetail, 0, len(meetings))
	for i := range meetings {
		details = append(details, buildMeetingDetail(&meetings[i], studentsByID, teachersByID))
	}
	return details, nil
}

func (s *MeetingService) expandMeeting(ctx context.Context, meeting *models.Meeting) (*models.MeetingDetail, error) {
	details, err := s.expandMeetings(ctx, []models.Meeting{*meeting})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *MeetingService) studentsByID(ctx context.Context, ids []string) (map[string]models.Student, error) {
	students, err := s.students.ListByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve students")
	}
	byID := make(map[string]models.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}
	return byID, nil
}

func (s *MeetingService) studentsByRollNumber(ctx context.Context, rolls []string) (map[string]models.Student, error) {
	students, err := s.students.ListByRollNumbers(ctx, rolls)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve students")
	}
	byRoll := make(map[string]models.Student, len(students))
	for _, st := range students {
		byRoll[st.RollNumber] = st
	}
	return byRoll, nil
}

func (s *MeetingService) teachersByID(ctx context.Context, ids []string) (map[string]models.Teacher, error) {
	teachers, err := s.teachers.ListByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve teachers")
	}
	byID := make(map[string]models.Teacher, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
	}
	return byID, nil
}

func buildMeetingDetail(meeting *models.Meeting, studentsByID map[string]models.Student, teachersByID map[string]models.Teacher) models.MeetingDetail {
	detail := models.MeetingDetail{
		Meeting:   *meeting,
		CreatedBy: meeting.CreatedBy(),
	}
	for _, id := range meeting.StudentIDs {
		if st, ok := studentsByID[id]; ok {
			detail.Participants.Students = append(detail.Participants.Students, studentRefOf(st))
		}
	}
	if t, ok := teachersByID[meeting.SupervisorID]; ok {
		detail.Participants.Supervisor = teacherRefOf(t)
	}
	if meeting.CoAdvisorID != nil {
		if t, ok := teachersByID[*meeting.CoAdvisorID]; ok {
			ref := teacherRefOf(t)
			detail.Participants.CoAdvisor = &ref
		}
	}
	return detail
}

// parseInterval validates the time pair: both parseable, then start strictly
// before end. Equal endpoints are a zero-length interval and rejected.
func parseInterval(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrInvalidDateFormat, fmt.Sprintf("start_time %q is not a valid RFC 3339 timestamp", startRaw))
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrInvalidDateFormat, fmt.Sprintf("end_time %q is not a valid RFC 3339 timestamp", endRaw))
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrInvalidInterval, "end_time must be strictly after start_time")
	}
	return start.UTC(), end.UTC(), nil
}

func conflictOf(m models.Meeting) models.VenueConflict {
	return models.VenueConflict{
		MeetingID: m.ID,
		GroupID:   m.GroupID,
		Venue:     m.Venue,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
	}
}

func venueConflictError(m models.Meeting) *appErrors.Error {
	conflict := conflictOf(m)
	return appErrors.Clone(appErrors.ErrVenueConflict, fmt.Sprintf("venue %s is already booked by group %s from %s", conflict.Venue, conflict.GroupID, conflict.TimeRange()))
}

func missingRollNumbers(wanted []string, found []models.Student) []string {
	have := make(map[string]struct{}, len(found))
	for _, st := range found {
		have[st.RollNumber] = struct{}{}
	}
	var missing []string
	for _, roll := range wanted {
		if _, ok := have[roll]; !ok {
			missing = append(missing, roll)
		}
	}
	sort.Strings(missing)
	return missing
}

func keysOf(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func studentRefOf(st models.Student) models.StudentRef {
	return models.StudentRef{ID: st.ID, Name: st.Name, RollNumber: st.RollNumber}
}

func teacherRefOf(t models.Teacher) models.TeacherRef {
	return models.TeacherRef{ID: t.ID, Name: t.Name, Email: t.Email}
}
