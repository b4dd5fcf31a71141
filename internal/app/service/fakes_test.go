package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/common/security"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/platform/config"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

// In-memory repository fakes. They mirror the constraint behavior of the
// postgres implementations (ErrNotFound, ErrConflict on unique violations)
// so the services can be exercised without a database.

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, _ *sql.Tx, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return common.ErrConflict
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hashedPassword string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

type fakeTeamRepo struct {
	teams   map[string]*model.Team
	members map[string]*model.TeamMember
	invites map[string]*model.TeamInvite
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   make(map[string]*model.Team),
		members: make(map[string]*model.TeamMember),
		invites: make(map[string]*model.TeamInvite),
	}
}

func (f *fakeTeamRepo) CreateTeamWithLeader(_ context.Context, team *model.Team, leader *model.TeamMember) error {
	for _, t := range f.teams {
		if t.Name == team.Name || t.JoinCode == team.JoinCode {
			return common.ErrConflict
		}
	}
	copiedTeam := *team
	copiedLeader := *leader
	f.teams[team.ID] = &copiedTeam
	f.members[leader.ID] = &copiedLeader
	return nil
}

func (f *fakeTeamRepo) acceptedCount(teamID string) int {
	n := 0
	for _, m := range f.members {
		if m.TeamID == teamID && m.Status == model.MemberAccepted {
			n++
		}
	}
	return n
}

func (f *fakeTeamRepo) FindTeamByID(_ context.Context, id string) (*model.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *t
	copied.AcceptedCount = f.acceptedCount(id)
	return &copied, nil
}

func (f *fakeTeamRepo) ListTeams(_ context.Context) ([]model.Team, error) {
	var teams []model.Team
	for id, t := range f.teams {
		copied := *t
		copied.AcceptedCount = f.acceptedCount(id)
		teams = append(teams, copied)
	}
	return teams, nil
}

func (f *fakeTeamRepo) FindTeamForParticipant(_ context.Context, participantID string) (*model.Team, error) {
	for _, m := range f.members {
		if m.ParticipantID == participantID && m.Status == model.MemberAccepted {
			return f.FindTeamByID(context.Background(), m.TeamID)
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeTeamRepo) DeleteTeam(_ context.Context, id string) error {
	if _, ok := f.teams[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.teams, id)
	for memberID, m := range f.members {
		if m.TeamID == id {
			delete(f.members, memberID)
		}
	}
	for inviteID, inv := range f.invites {
		if inv.TeamID == id {
			delete(f.invites, inviteID)
		}
	}
	return nil
}

func (f *fakeTeamRepo) SelectProblem(_ context.Context, teamID, problemID string, teamLimit int) error {
	t, ok := f.teams[teamID]
	if !ok {
		return common.ErrNotFound
	}
	holders := 0
	for id, other := range f.teams {
		if id != teamID && other.ProblemID != nil && *other.ProblemID == problemID {
			holders++
		}
	}
	if holders >= teamLimit {
		return common.ErrConflict
	}
	t.ProblemID = &problemID
	return nil
}

func (f *fakeTeamRepo) CreateMember(_ context.Context, member *model.TeamMember) error {
	for _, m := range f.members {
		if m.TeamID == member.TeamID && m.ParticipantID == member.ParticipantID {
			return common.ErrConflict
		}
	}
	copied := *member
	f.members[member.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) GetMember(_ context.Context, memberID string) (*model.TeamMember, error) {
	m, ok := f.members[memberID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeTeamRepo) GetMemberByTeamAndParticipant(_ context.Context, teamID, participantID string) (*model.TeamMember, error) {
	for _, m := range f.members {
		if m.TeamID == teamID && m.ParticipantID == participantID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeTeamRepo) GetMembers(_ context.Context, teamID string) ([]model.TeamMember, error) {
	var members []model.TeamMember
	for _, m := range f.members {
		if m.TeamID == teamID {
			members = append(members, *m)
		}
	}
	return members, nil
}

func (f *fakeTeamRepo) UpdateMemberStatus(_ context.Context, memberID string, status model.MemberStatus) error {
	m, ok := f.members[memberID]
	if !ok {
		return common.ErrNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeTeamRepo) DeleteMember(_ context.Context, memberID string) error {
	if _, ok := f.members[memberID]; !ok {
		return common.ErrNotFound
	}
	delete(f.members, memberID)
	return nil
}

func (f *fakeTeamRepo) HasAcceptedMembership(_ context.Context, participantID string) (bool, error) {
	for _, m := range f.members {
		if m.ParticipantID == participantID && m.Status == model.MemberAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeamRepo) CountAcceptedMembers(_ context.Context, teamID string) (int, error) {
	return f.acceptedCount(teamID), nil
}

func (f *fakeTeamRepo) CreateInvite(_ context.Context, invite *model.TeamInvite) error {
	copied := *invite
	f.invites[invite.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) GetInvite(_ context.Context, inviteID string) (*model.TeamInvite, error) {
	inv, ok := f.invites[inviteID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeTeamRepo) ListPendingInvitesForEmail(_ context.Context, email string) ([]model.TeamInvite, error) {
	var invites []model.TeamInvite
	for _, inv := range f.invites {
		if inv.InvitedEmail == email && inv.Status == model.InvitePending {
			invites = append(invites, *inv)
		}
	}
	return invites, nil
}

func (f *fakeTeamRepo) UpdateInviteStatus(_ context.Context, inviteID string, status model.InviteStatus) error {
	inv, ok := f.invites[inviteID]
	if !ok {
		return common.ErrNotFound
	}
	inv.Status = status
	return nil
}

type fakeEventRepo struct {
	schedule   []model.ScheduleItem
	problems   map[string]*model.ProblemStatement
	organizers []model.Organizer
	faqs       []model.FAQ
	resources  []model.Resource
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{problems: make(map[string]*model.ProblemStatement)}
}

func (f *fakeEventRepo) ListScheduleItems(_ context.Context) ([]model.ScheduleItem, error) {
	return f.schedule, nil
}

func (f *fakeEventRepo) CreateProblem(_ context.Context, problem *model.ProblemStatement) error {
	for _, p := range f.problems {
		if p.Slug == problem.Slug {
			return fmt.Errorf("problem slug already exists: %w", common.ErrConflict)
		}
	}
	copied := *problem
	f.problems[problem.ID] = &copied
	return nil
}

func (f *fakeEventRepo) ListProblemStatements(_ context.Context) ([]model.ProblemStatement, error) {
	var problems []model.ProblemStatement
	for _, p := range f.problems {
		problems = append(problems, *p)
	}
	return problems, nil
}

func (f *fakeEventRepo) FindProblemByID(_ context.Context, id string) (*model.ProblemStatement, error) {
	p, ok := f.problems[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeEventRepo) ListOrganizers(_ context.Context) ([]model.Organizer, error) {
	return f.organizers, nil
}

func (f *fakeEventRepo) ListFAQs(_ context.Context) ([]model.FAQ, error) {
	return f.faqs, nil
}

func (f *fakeEventRepo) ListResources(_ context.Context) ([]model.Resource, error) {
	return f.resources, nil
}

type fakeSubmissionRepo struct {
	submissions map[string]*model.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[string]*model.Submission)}
}

func (f *fakeSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	for _, s := range f.submissions {
		if s.TeamID == submission.TeamID {
			return common.ErrConflict
		}
	}
	copied := *submission
	f.submissions[submission.ID] = &copied
	return nil
}

func (f *fakeSubmissionRepo) FindByID(_ context.Context, id string) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSubmissionRepo) FindByTeamID(_ context.Context, teamID string) (*model.Submission, error) {
	for _, s := range f.submissions {
		if s.TeamID == teamID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	if _, ok := f.submissions[submission.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *submission
	f.submissions[submission.ID] = &copied
	return nil
}

func (f *fakeSubmissionRepo) SetPlanPath(_ context.Context, id, planPath string) error {
	s, ok := f.submissions[id]
	if !ok {
		return common.ErrNotFound
	}
	s.PlanPath = &planPath
	return nil
}

func (f *fakeSubmissionRepo) ListAll(_ context.Context) ([]model.Submission, error) {
	var all []model.Submission
	for _, s := range f.submissions {
		all = append(all, *s)
	}
	return all, nil
}

type fakeJudgingRepo struct {
	scores map[string]*model.JudgingScore
}

func newFakeJudgingRepo() *fakeJudgingRepo {
	return &fakeJudgingRepo{scores: make(map[string]*model.JudgingScore)}
}

func scoreKey(judgeID, submissionID string) string {
	return judgeID + "|" + submissionID
}

func (f *fakeJudgingRepo) CreateScore(_ context.Context, score *model.JudgingScore) error {
	key := scoreKey(score.JudgeID, score.SubmissionID)
	if _, ok := f.scores[key]; ok {
		return common.ErrConflict
	}
	copied := *score
	f.scores[key] = &copied
	return nil
}

func (f *fakeJudgingRepo) GetScore(_ context.Context, judgeID, submissionID string) (*model.JudgingScore, error) {
	s, ok := f.scores[scoreKey(judgeID, submissionID)]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeJudgingRepo) UpdateScore(_ context.Context, score *model.JudgingScore) error {
	key := scoreKey(score.JudgeID, score.SubmissionID)
	if _, ok := f.scores[key]; !ok {
		return common.ErrNotFound
	}
	copied := *score
	f.scores[key] = &copied
	return nil
}

func (f *fakeJudgingRepo) ListScoresForSubmission(_ context.Context, submissionID string) ([]model.JudgingScore, error) {
	var scores []model.JudgingScore
	for _, s := range f.scores {
		if s.SubmissionID == submissionID {
			scores = append(scores, *s)
		}
	}
	return scores, nil
}

type fakeAnnouncementRepo struct {
	announcements []model.Announcement
}

func (f *fakeAnnouncementRepo) Create(_ context.Context, announcement *model.Announcement) error {
	f.announcements = append(f.announcements, *announcement)
	return nil
}

func (f *fakeAnnouncementRepo) ListAll(_ context.Context) ([]model.Announcement, error) {
	return f.announcements, nil
}

// fakeNotificationRepo fans out to the user IDs it was seeded with.
type fakeNotificationRepo struct {
	userIDs       []string
	notifications []*model.Notification
	nextID        int
}

func (f *fakeNotificationRepo) FanOut(_ context.Context, message string) (int, error) {
	for _, userID := range f.userIDs {
		f.nextID++
		f.notifications = append(f.notifications, &model.Notification{
			ID:      fmt.Sprintf("n%d", f.nextID),
			UserID:  userID,
			Message: message,
		})
	}
	return len(f.userIDs), nil
}

func (f *fakeNotificationRepo) ListForUser(_ context.Context, userID string) ([]model.Notification, error) {
	var list []model.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			list = append(list, *n)
		}
	}
	return list, nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) (int, error) {
	flipped := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			flipped++
		}
	}
	return flipped, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeCertificateRepo struct {
	byUser map[string]*model.Certificate
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{byUser: make(map[string]*model.Certificate)}
}

func (f *fakeCertificateRepo) Create(_ context.Context, certificate *model.Certificate) error {
	if _, ok := f.byUser[certificate.UserID]; ok {
		return common.ErrConflict
	}
	copied := *certificate
	f.byUser[certificate.UserID] = &copied
	return nil
}

func (f *fakeCertificateRepo) FindByUserID(_ context.Context, userID string) (*model.Certificate, error) {
	c, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCertificateRepo) ExistsForUser(_ context.Context, userID string) (bool, error) {
	_, ok := f.byUser[userID]
	return ok, nil
}

type fakeFeedbackRepo struct {
	feedback []model.Feedback
}

func (f *fakeFeedbackRepo) Create(_ context.Context, fb *model.Feedback) error {
	f.feedback = append(f.feedback, *fb)
	return nil
}

func (f *fakeFeedbackRepo) ListAll(_ context.Context) ([]model.Feedback, error) {
	return f.feedback, nil
}

// recordingRenderer records names without touching the filesystem.
type recordingRenderer struct {
	rendered []string
}

func (r *recordingRenderer) Render(name, _ string) error {
	r.rendered = append(r.rendered, name)
	return nil
}
