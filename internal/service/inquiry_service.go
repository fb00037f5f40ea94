package service

import (
	"context"
	"errors"
	"strings"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"

	"gorm.io/gorm"
)

type InquiryService struct {
	inquiryDao *dao.InquiryDao
}

func NewInquiryService(inquiryDao *dao.InquiryDao) *InquiryService {
	return &InquiryService{inquiryDao: inquiryDao}
}

// CreateInquiryInput 公共表单提交
type CreateInquiryInput struct {
	Message string
	Name    string
	Email   string
	Mobile  string
}

// CreateInquiry 创建咨询 message必填 其余可空
func (s *InquiryService) CreateInquiry(ctx context.Context, input CreateInquiryInput) (*model.Inquiry, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, e.NewMsg(e.INVALID_PARAMS, "Message is required")
	}

	inquiry := &model.Inquiry{
		Message: message,
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Mobile:  utils.NormalizeMobile(strings.TrimSpace(input.Mobile)),
		Status:  model.InquiryStatusPending,
	}

	if err := s.inquiryDao.CreateInquiry(ctx, inquiry); err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	return inquiry, nil
}

// ListInquiries 咨询列表 可按状态过滤
func (s *InquiryService) ListInquiries(ctx context.Context, status string, limit int) ([]*model.Inquiry, error) {
	var filter model.InquiryStatus
	if status != "" {
		filter = model.InquiryStatus(status)
		if !filter.Valid() {
			return nil, e.New(e.ERROR_INQUIRY_STATUS)
		}
	}

	inquiries, err := s.inquiryDao.ListInquiries(ctx, filter, limit)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	return inquiries, nil
}

// UpdateStatus 更新处理状态
func (s *InquiryService) UpdateStatus(ctx context.Context, id int64, status model.InquiryStatus) (*model.Inquiry, error) {
	if !status.Valid() {
		return nil, e.New(e.ERROR_INQUIRY_STATUS)
	}

	if err := s.inquiryDao.UpdateInquiryStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_INQUIRY_NOT_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	inquiry, err := s.inquiryDao.GetInquiryByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	return inquiry, nil
}

// DeleteInquiry 删除咨询
func (s *InquiryService) DeleteInquiry(ctx context.Context, id int64) error {
	err := s.inquiryDao.DeleteInquiry(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.New(e.ERROR_INQUIRY_NOT_EXISTS)
		}
		return e.Wrap(e.ERROR, err)
	}
	return nil
}
