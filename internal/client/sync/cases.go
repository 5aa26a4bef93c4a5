package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iudanet/caseflow/internal/client/auth"
	"github.com/iudanet/caseflow/internal/client/storage"
	"github.com/iudanet/caseflow/internal/models"
	"github.com/iudanet/caseflow/pkg/api"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// GetCases возвращает страницу дел. Онлайн: серверная выборка + обновление
// кеша. Офлайн или при ошибке сети: локальная выборка с теми же правилами
// фильтрации, сортировки и пагинации.
func (s *service) GetCases(ctx context.Context, params api.CaseListParams) (*CaseList, error) {
	if s.connectivity.IsOnline() {
		if list, err := s.getRemoteCases(ctx, params); err == nil {
			return list, nil
		} else if !errors.Is(err, auth.ErrNoAuthToken) {
			s.logger.Warn("Remote case list failed, falling back to local cache", "error", err)
		}
	}

	local, err := s.getLocalCases(ctx)
	if err != nil {
		return nil, err
	}
	return filterAndPaginate(local, params), nil
}

func (s *service) getRemoteCases(ctx context.Context, params api.CaseListParams) (*CaseList, error) {
	accessToken, err := s.authSvc.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.apiClient.ListCases(ctx, accessToken, params)
	if err != nil {
		return nil, err
	}

	cases := make([]models.Case, 0, len(data.Cases))
	for _, w := range data.Cases {
		c := models.CaseFromWire(w)
		if migrated, changed := models.MigrateOutcome(c.VerificationOutcome); changed {
			c.VerificationOutcome = migrated
		}
		cases = append(cases, c)
	}

	if err := s.cacheCases(ctx, cases); err != nil {
		// Кеш не должен ронять успешную серверную выборку
		s.logger.Warn("Failed to cache server cases", "error", err)
	}

	return &CaseList{Cases: cases, Pagination: data.Pagination}, nil
}

// GetCase возвращает дело из локального кеша, при промахе и доступной
// сети дотягивает его с сервера и кеширует
func (s *service) GetCase(ctx context.Context, id string) (*models.Case, error) {
	if id == "" {
		return nil, errors.New("case id must not be empty")
	}

	local, err := s.getLocalCases(ctx)
	if err != nil {
		return nil, err
	}
	for i := range local {
		if local[i].ID == id {
			c := local[i]
			return &c, nil
		}
	}

	if !s.connectivity.IsOnline() {
		return nil, storage.ErrCaseNotFound
	}

	accessToken, err := s.authSvc.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.apiClient.GetCase(ctx, accessToken, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case %s: %w", id, err)
	}

	c := models.CaseFromWire(data.Case)
	if migrated, changed := models.MigrateOutcome(c.VerificationOutcome); changed {
		c.VerificationOutcome = migrated
	}

	local = append(local, c)
	if err := s.caseStorage.SaveCases(ctx, local); err != nil {
		s.logger.Warn("Failed to cache fetched case", "case_id", id, "error", err)
	}
	return &c, nil
}

// getLocalCases читает локальную коллекцию и применяет миграцию устаревших
// результатов верификации. Хранилище перезаписывается только если миграция
// что-то изменила.
func (s *service) getLocalCases(ctx context.Context) ([]models.Case, error) {
	cases, err := s.caseStorage.GetCases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get local cases: %w", err)
	}

	if models.MigrateCaseOutcomes(cases) {
		if err := s.caseStorage.SaveCases(ctx, cases); err != nil {
			s.logger.Warn("Failed to persist migrated outcomes", "error", err)
		}
	}

	return cases, nil
}

// cacheCases вливает серверные записи в локальный кеш. Серверная запись
// замещает локальную с тем же ID (клиентские поля переживают замену),
// записи, не пришедшие с сервера, остаются как есть.
func (s *service) cacheCases(ctx context.Context, incoming []models.Case) error {
	local, err := s.caseStorage.GetCases(ctx)
	if err != nil {
		return fmt.Errorf("failed to get local cases: %w", err)
	}

	index := make(map[string]int, len(local))
	for i := range local {
		index[local[i].ID] = i
	}

	for _, c := range incoming {
		if i, ok := index[c.ID]; ok {
			c.IsSaved = local[i].IsSaved
			c.SavedAt = local[i].SavedAt
			c.SubmissionStatus = local[i].SubmissionStatus
			c.SubmissionError = local[i].SubmissionError
			c.LastSubmissionAt = local[i].LastSubmissionAt
			local[i] = c
		} else {
			local = append(local, c)
			index[c.ID] = len(local) - 1
		}
	}

	return s.caseStorage.SaveCases(ctx, local)
}

// filterAndPaginate применяет к локальной коллекции те же правила выборки,
// что и сервер: фильтры, подстрочный поиск, сортировка и постраничная
// нарезка, чтобы офлайн-результат не отличался по форме от онлайн
func filterAndPaginate(cases []models.Case, params api.CaseListParams) *CaseList {
	filtered := make([]models.Case, 0, len(cases))
	search := strings.ToLower(params.Search)

	for _, c := range cases {
		if params.Status != "" && !strings.EqualFold(string(c.Status), params.Status) {
			continue
		}
		if params.VerificationType != "" && !strings.EqualFold(string(c.VerificationType), params.VerificationType) {
			continue
		}
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		filtered = append(filtered, c)
	}

	sortCases(filtered, params.SortBy, params.SortOrder)

	page := params.Page
	if page <= 0 {
		page = defaultPage
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &CaseList{
		Cases: filtered[start:end],
		Pagination: api.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

func matchesSearch(c models.Case, search string) bool {
	haystacks := []string{
		c.Title,
		c.Customer.Name,
		c.ClientName,
		c.VisitAddress,
		strconv.FormatInt(c.CaseID, 10),
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), search) {
			return true
		}
	}
	return false
}

func sortCases(cases []models.Case, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = "updatedAt"
	}
	asc := sortOrder == "asc"

	sort.SliceStable(cases, func(i, j int) bool {
		var cmp int
		switch sortBy {
		case "createdAt":
			cmp = strings.Compare(cases[i].CreatedAt, cases[j].CreatedAt)
		case "priority":
			cmp = priorityValue(cases[i]) - priorityValue(cases[j])
		default: // updatedAt
			cmp = strings.Compare(cases[i].UpdatedAt, cases[j].UpdatedAt)
		}
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}

func priorityValue(c models.Case) int {
	if c.Priority == nil {
		return 0
	}
	return *c.Priority
}
