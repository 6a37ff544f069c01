package instance

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Service 馆藏副本领域服务
type Service struct {
	repo Repository
}

// NewService 创建副本领域服务
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddInstance 为图书入库一个新副本
func (s *Service) AddInstance(ctx context.Context, bookID, imprint string) (*BookInstance, error) {
	imprint = strings.TrimSpace(imprint)
	if imprint == "" {
		return nil, ErrInvalidImprint
	}

	inst := NewBookInstance(uuid.NewString(), bookID, imprint)
	if err := s.repo.Create(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// GetInstance 查询单个副本
func (s *Service) GetInstance(ctx context.Context, id string) (*BookInstance, error) {
	return s.repo.FindByID(ctx, id)
}
