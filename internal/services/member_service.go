package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	"brigade-ops/rollcall/internal/models/dtos"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
)

const memberCodeCacheTTL = 5 * time.Minute

// MemberService owns the station roster of people, keyed by scannable code
type MemberService struct {
	members repositories.MemberRepository
	cache   common.CacheInterface
}

func NewMemberService(members repositories.MemberRepository, cache common.CacheInterface) *MemberService {
	return &MemberService{
		members: members,
		cache:   cache,
	}
}

func (s *MemberService) CreateMember(ctx context.Context, stationID string, req *dtos.CreateMemberReq) (*gormModels.Member, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return nil, fmt.Errorf("%w: name and code are required", constants.ErrValidation)
	}

	existing, err := s.members.GetByCode(ctx, stationID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code %q is already assigned", constants.ErrValidation, code)
	}

	member := &gormModels.Member{
		StationID: stationID,
		Name:      name,
		Code:      code,
		Rank:      req.Rank,
		IsActive:  true,
	}

	if err := s.members.Insert(ctx, member); err != nil {
		return nil, err
	}

	s.cache.Delete(string(constants.CachePrefixMemberCode) + stationID + ":" + code)

	return member, nil
}

func (s *MemberService) GetByID(ctx context.Context, stationID, id string) (*gormModels.Member, error) {
	member, err := s.members.GetByID(ctx, stationID, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgMemberNotFound)
	}
	return member, nil
}

// FindByCode resolves a scanned tag to a member, caching the hit since kiosks
// re-scan the same codes all shift.
func (s *MemberService) FindByCode(ctx context.Context, stationID, code string) (*gormModels.Member, error) {
	cacheKey := string(constants.CachePrefixMemberCode) + stationID + ":" + code
	if val, found := s.cache.Get(cacheKey); found {
		if member, ok := val.(*gormModels.Member); ok {
			return member, nil
		}
	}

	member, err := s.members.GetByCode(ctx, stationID, code)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgMemberNotFound)
	}

	s.cache.Set(cacheKey, member, memberCodeCacheTTL)
	return member, nil
}

func (s *MemberService) List(ctx context.Context, stationID string) ([]gormModels.Member, error) {
	return s.members.List(ctx, stationID)
}

// ImportCSV loads members in bulk from a "name,code,rank" CSV. Rows are
// processed independently: a bad or duplicate row is reported and skipped,
// never aborting the rest of the file.
func (s *MemberService) ImportCSV(ctx context.Context, stationID string, r io.Reader) (*dtos.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty csv", constants.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrValidation, err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameIdx, okName := cols["name"]
	codeIdx, okCode := cols["code"]
	if !okName || !okCode {
		return nil, fmt.Errorf("%w: csv header must contain name and code columns", constants.ErrValidation)
	}
	rankIdx, hasRank := cols["rank"]

	result := &dtos.ImportResult{Rows: make([]dtos.ImportRowResult, 0)}
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Rows = append(result.Rows, dtos.ImportRowResult{
				Line:    line,
				Status:  "skipped",
				Message: err.Error(),
			})
			continue
		}

		field := func(idx int) string {
			if idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		req := &dtos.CreateMemberReq{
			Name: field(nameIdx),
			Code: field(codeIdx),
		}
		if hasRank {
			if rank := field(rankIdx); rank != "" {
				req.Rank = &rank
			}
		}

		if _, err := s.CreateMember(ctx, stationID, req); err != nil {
			result.Skipped++
			result.Rows = append(result.Rows, dtos.ImportRowResult{
				Line:    line,
				Code:    req.Code,
				Status:  "skipped",
				Message: err.Error(),
			})
			continue
		}

		result.Created++
		result.Rows = append(result.Rows, dtos.ImportRowResult{
			Line:   line,
			Code:   req.Code,
			Status: "created",
		})
	}

	return result, nil
}
