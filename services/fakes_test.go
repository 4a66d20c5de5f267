package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/soccer-cup/models"
	"github.com/Dosada05/soccer-cup/repositories"
)

// memDB is an in-memory match record shared by the fake repositories.
type memDB struct {
	mu          sync.Mutex
	nextID      int
	tournaments map[int]*models.Tournament
	groups      map[int]*models.Group
	teams       map[int]*models.Team
	matches     map[int]*models.Match
	players     map[int]*models.Player
}

func newMemDB() *memDB {
	return &memDB{
		tournaments: make(map[int]*models.Tournament),
		groups:      make(map[int]*models.Group),
		teams:       make(map[int]*models.Team),
		matches:     make(map[int]*models.Match),
		players:     make(map[int]*models.Player),
	}
}

func (db *memDB) id() int {
	db.nextID++
	return db.nextID
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTxManager struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTxManager) WithinTournament(ctx context.Context, tournamentID int, fn func(exec repositories.SQLExecutor) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return fn(nil)
}

type publishedEvent struct {
	TournamentID int
	Type         string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishTournamentEvent(tournamentID int, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{TournamentID: tournamentID, Type: eventType})
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

// --- tournaments ---

type memTournamentRepo struct{ db *memDB }

func (r *memTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if t.StartDate.After(t.EndDate) {
		return repositories.ErrTournamentInvalidDates
	}
	t.ID = r.db.id()
	if t.Status == "" {
		t.Status = models.StatusActive
	}
	if t.CurrentStage == "" {
		t.CurrentStage = models.BracketGroupStage
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	c := *t
	r.db.tournaments[t.ID] = &c
	return nil
}

func (r *memTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Tournament, 0)
	for _, t := range r.db.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !containsFold(t.Name, filter.Search) && !containsFold(derefString(t.Description), filter.Search) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	c := *t
	r.db.tournaments[t.ID] = &c
	return nil
}

func (r *memTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r *memTournamentRepo) UpdateCurrentStage(ctx context.Context, exec repositories.SQLExecutor, id int, stage models.BracketStage) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.CurrentStage = stage
	return nil
}

func (r *memTournamentRepo) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.db.tournaments, id)
	return nil
}

func (r *memTournamentRepo) Count(ctx context.Context, status *models.TournamentStatus) (int, error) {
	list, _ := r.List(ctx, repositories.ListTournamentsFilter{Status: status})
	return len(list), nil
}

// --- groups ---

type memGroupRepo struct{ db *memDB }

func (r *memGroupRepo) Create(ctx context.Context, g *models.Group) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tournaments[g.TournamentID]; !ok {
		return repositories.ErrGroupInvalidTournament
	}
	for _, existing := range r.db.groups {
		if existing.TournamentID == g.TournamentID && strings.EqualFold(existing.Name, g.Name) {
			return repositories.ErrGroupNameConflict
		}
	}
	g.ID = r.db.id()
	g.CreatedAt = time.Now()
	c := *g
	r.db.groups[g.ID] = &c
	return nil
}

func (r *memGroupRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	g, ok := r.db.groups[id]
	if !ok {
		return nil, repositories.ErrGroupNotFound
	}
	c := *g
	return &c, nil
}

func (r *memGroupRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Group, 0)
	for _, g := range r.db.groups {
		if g.TournamentID == tournamentID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memGroupRepo) Rename(ctx context.Context, id int, name string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	g, ok := r.db.groups[id]
	if !ok {
		return repositories.ErrGroupNotFound
	}
	for _, existing := range r.db.groups {
		if existing.ID != id && existing.TournamentID == g.TournamentID && strings.EqualFold(existing.Name, name) {
			return repositories.ErrGroupNameConflict
		}
	}
	g.Name = name
	return nil
}

func (r *memGroupRepo) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.groups[id]; !ok {
		return repositories.ErrGroupNotFound
	}
	delete(r.db.groups, id)
	for _, t := range r.db.teams {
		if t.GroupID != nil && *t.GroupID == id {
			t.GroupID = nil
		}
	}
	return nil
}

// --- teams ---

type memTeamRepo struct{ db *memDB }

func (r *memTeamRepo) Create(ctx context.Context, t *models.Team) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tournaments[t.TournamentID]; !ok {
		return repositories.ErrTeamInvalidTournament
	}
	t.ID = r.db.id()
	t.CreatedAt = time.Now()
	c := *t
	r.db.teams[t.ID] = &c
	return nil
}

func (r *memTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTeamRepo) filter(keep func(*models.Team) bool) []*models.Team {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*models.Team, 0)
	for _, t := range r.db.teams {
		if keep(t) {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memTeamRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.Team, error) {
	return r.filter(func(t *models.Team) bool { return t.TournamentID == tournamentID }), nil
}

func (r *memTeamRepo) ListByGroup(ctx context.Context, exec repositories.SQLExecutor, groupID int) ([]*models.Team, error) {
	return r.filter(func(t *models.Team) bool { return t.GroupID != nil && *t.GroupID == groupID }), nil
}

func (r *memTeamRepo) Update(ctx context.Context, team *models.Team) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.teams[team.ID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Name, t.City, t.LogoURL = team.Name, team.City, team.LogoURL
	return nil
}

func (r *memTeamRepo) UpdateGroup(ctx context.Context, id int, groupID *int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.GroupID = groupID
	return nil
}

func (r *memTeamRepo) SetQualified(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, teamIDs []int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	set := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		set[id] = true
	}
	for _, t := range r.db.teams {
		if t.TournamentID == tournamentID {
			t.QualifiedForKnockout = set[t.ID]
		}
	}
	return nil
}

func (r *memTeamRepo) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.db.teams, id)
	return nil
}

func (r *memTeamRepo) Count(ctx context.Context) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.teams), nil
}

// --- matches ---

type memMatchRepo struct {
	db      *memDB
	creates int
}

func copyMatch(m *models.Match) *models.Match {
	c := *m
	return &c
}

func (r *memMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if m.HomeTeamID != nil && m.AwayTeamID != nil && *m.HomeTeamID == *m.AwayTeamID {
		return repositories.ErrMatchSameTeams
	}
	if m.BracketSlot != nil {
		for _, existing := range r.db.matches {
			if existing.TournamentID == m.TournamentID && existing.Stage == m.Stage &&
				existing.BracketSlot != nil && *existing.BracketSlot == *m.BracketSlot {
				return repositories.ErrMatchSlotConflict
			}
		}
	}
	if m.Status == "" {
		m.Status = models.MatchStatusScheduled
	}
	m.ID = r.db.id()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.db.matches[m.ID] = copyMatch(m)
	r.creates++
	return nil
}

func (r *memMatchRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	for _, m := range matches {
		if err := r.Create(ctx, exec, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *memMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return copyMatch(m), nil
}

func (r *memMatchRepo) filter(keep func(*models.Match) bool) []*models.Match {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, m := range r.db.matches {
		if keep(m) {
			out = append(out, copyMatch(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, f repositories.MatchFilter) ([]*models.Match, error) {
	return r.filter(func(m *models.Match) bool {
		return m.TournamentID == tournamentID &&
			(f.Stage == nil || m.Stage == *f.Stage) &&
			(f.GroupID == nil || (m.GroupID != nil && *m.GroupID == *f.GroupID)) &&
			(f.Status == nil || m.Status == *f.Status)
	}), nil
}

func (r *memMatchRepo) ListByTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int) ([]*models.Match, error) {
	return r.filter(func(m *models.Match) bool { return m.InvolvesTeam(teamID) }), nil
}

func (r *memMatchRepo) ListRecentCompleted(ctx context.Context, limit int) ([]*models.Match, error) {
	out := r.filter(func(m *models.Match) bool { return m.Status == models.MatchStatusCompleted })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMatchRepo) CountGroupStage(ctx context.Context, exec repositories.SQLExecutor, groupID int) (int, error) {
	return len(r.filter(func(m *models.Match) bool {
		return m.Stage == models.StageGroup && m.GroupID != nil && *m.GroupID == groupID
	})), nil
}

func (r *memMatchRepo) FindBySlot(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, stage models.Stage, slot int) (*models.Match, error) {
	found := r.filter(func(m *models.Match) bool {
		return m.TournamentID == tournamentID && m.Stage == stage && m.BracketSlot != nil && *m.BracketSlot == slot
	})
	if len(found) == 0 {
		return nil, repositories.ErrMatchNotFound
	}
	return found[0], nil
}

func (r *memMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, id int, homeScore, awayScore int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.HomeScore, m.AwayScore = &homeScore, &awayScore
	m.Status = models.MatchStatusCompleted
	return nil
}

func (r *memMatchRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.MatchStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Status = status
	return nil
}

func (r *memMatchRepo) UpdateSides(ctx context.Context, exec repositories.SQLExecutor, u *models.Match) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.matches[u.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if u.HomeTeamID != nil && u.AwayTeamID != nil && *u.HomeTeamID == *u.AwayTeamID {
		return repositories.ErrMatchSameTeams
	}
	m.HomeTeamID, m.AwayTeamID = u.HomeTeamID, u.AwayTeamID
	m.HomeSourceMatchID, m.AwaySourceMatchID = u.HomeSourceMatchID, u.AwaySourceMatchID
	return nil
}

func (r *memMatchRepo) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.db.matches, id)
	return nil
}

func (r *memMatchRepo) DeleteKnockout(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, m := range r.db.matches {
		if m.TournamentID == tournamentID && m.Stage.IsKnockout() {
			delete(r.db.matches, id)
			n++
		}
	}
	return n, nil
}

func (r *memMatchRepo) UpdateSchedule(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.matches[m.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	stored.MatchTime, stored.Field, stored.Venue, stored.Stage = m.MatchTime, m.Field, m.Venue, m.Stage
	stored.UpdatedAt = time.Now()
	m.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memMatchRepo) Count(ctx context.Context, status *models.MatchStatus) (int, error) {
	return len(r.filter(func(m *models.Match) bool { return status == nil || m.Status == *status })), nil
}

// --- players ---

type memPlayerRepo struct{ db *memDB }

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *memPlayerRepo) Create(ctx context.Context, p *models.Player) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.teams[p.TeamID]; !ok {
		return repositories.ErrPlayerInvalidTeam
	}
	if p.JerseyNumber != nil {
		for _, existing := range r.db.players {
			if existing.TeamID == p.TeamID && existing.JerseyNumber != nil && *existing.JerseyNumber == *p.JerseyNumber {
				return repositories.ErrPlayerJerseyTaken
			}
		}
	}
	p.ID = r.db.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	c := *p
	r.db.players[p.ID] = &c
	return nil
}

func (r *memPlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	c := *p
	return &c, nil
}

func (r *memPlayerRepo) filter(keep func(*models.Player) bool) []*models.Player {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*models.Player, 0)
	for _, p := range r.db.players {
		if keep(p) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memPlayerRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	out := r.filter(func(p *models.Player) bool { return p.TeamID == teamID })
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].JerseyNumber, out[j].JerseyNumber
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a < *b
	})
	return out, nil
}

func (r *memPlayerRepo) UpdateStats(ctx context.Context, id int, stats models.PlayerStats) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.PlayerStats = stats
	return nil
}

func (r *memPlayerRepo) Delete(ctx context.Context, id int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.db.players, id)
	return nil
}

func (r *memPlayerRepo) Count(ctx context.Context) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.players), nil
}

func (r *memPlayerRepo) TopScorers(ctx context.Context, limit int) ([]*models.Player, error) {
	out := r.filter(func(*models.Player) bool { return true })
	sort.SliceStable(out, func(i, j int) bool { return out[i].GoalsScored > out[j].GoalsScored })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPlayerRepo) Search(ctx context.Context, q string) ([]*models.Player, error) {
	return r.filter(func(p *models.Player) bool {
		return containsFold(p.FirstName, q) || containsFold(p.LastName, q) || containsFold(derefString(p.Nationality), q)
	}), nil
}

// fixture wires every service to one memDB.
type fixture struct {
	db          *memDB
	tx          *fakeTxManager
	pub         *recordingPublisher
	tournaments *memTournamentRepo
	groups      *memGroupRepo
	teams       *memTeamRepo
	matches     *memMatchRepo
	players     *memPlayerRepo
}

func newFixture() *fixture {
	db := newMemDB()
	return &fixture{
		db:          db,
		tx:          &fakeTxManager{},
		pub:         &recordingPublisher{},
		tournaments: &memTournamentRepo{db: db},
		groups:      &memGroupRepo{db: db},
		teams:       &memTeamRepo{db: db},
		matches:     &memMatchRepo{db: db},
		players:     &memPlayerRepo{db: db},
	}
}

var testStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func (f *fixture) tournament(name string) *models.Tournament {
	t := &models.Tournament{Name: name, StartDate: testStart, EndDate: testStart.AddDate(0, 0, 14), MaxTeams: 16}
	if err := f.tournaments.Create(context.Background(), t); err != nil {
		panic(err)
	}
	return t
}

func (f *fixture) group(tournamentID int, name string) *models.Group {
	g := &models.Group{TournamentID: tournamentID, Name: name}
	if err := f.groups.Create(context.Background(), g); err != nil {
		panic(err)
	}
	return g
}

func (f *fixture) team(tournamentID int, groupID *int, name string) *models.Team {
	t := &models.Team{TournamentID: tournamentID, GroupID: groupID, Name: name}
	if err := f.teams.Create(context.Background(), t); err != nil {
		panic(err)
	}
	return t
}

func (f *fixture) player(teamID int, first, last string, goals int) *models.Player {
	p := &models.Player{TeamID: teamID, FirstName: first, LastName: last}
	if err := f.players.Create(context.Background(), p); err != nil {
		panic(err)
	}
	if err := f.players.UpdateStats(context.Background(), p.ID, models.PlayerStats{GoalsScored: goals}); err != nil {
		panic(err)
	}
	p.GoalsScored = goals
	return p
}

func (f *fixture) standings() StandingsService {
	return NewStandingsService(f.tournaments, f.groups, f.teams, f.matches, discardLogger())
}

func (f *fixture) fixtures() FixtureService {
	return NewFixtureService(f.tx, f.tournaments, f.groups, f.teams, f.matches, ScheduleDefaults{
		Fields:           3,
		SlotDuration:     2 * time.Hour,
		MatchesPerDay:    2,
		FirstKickoffHour: 14,
	}, f.pub, discardLogger())
}

func (f *fixture) knockout() *knockoutService {
	svc := NewKnockoutService(f.tx, f.tournaments, f.groups, f.teams, f.matches, 7*24*time.Hour, f.pub, discardLogger())
	ks := svc.(*knockoutService)
	ks.now = func() time.Time { return testStart }
	return ks
}

func (f *fixture) matchService() MatchService {
	return NewMatchService(f.tx, f.tournaments, f.groups, f.teams, f.matches, f.pub, discardLogger())
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func repositoriesFilter(stage models.Stage) repositories.MatchFilter {
	return repositories.MatchFilter{Stage: &stage}
}
