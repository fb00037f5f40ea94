package dao

import (
	"context"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"gorm.io/gorm"
)

type InquiryDao struct {
	db *gorm.DB
}

func NewInquiryDao(db *gorm.DB) *InquiryDao {
	return &InquiryDao{db: db}
}

// CreateInquiry 创建咨询
func (d *InquiryDao) CreateInquiry(ctx context.Context, inquiry *model.Inquiry) error {
	return d.db.WithContext(ctx).Create(inquiry).Error
}

// GetInquiryByID 根据ID获取咨询
func (d *InquiryDao) GetInquiryByID(ctx context.Context, id int64) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// ListInquiries 查询咨询 可按状态过滤
func (d *InquiryDao) ListInquiries(ctx context.Context, status model.InquiryStatus, limit int) ([]*model.Inquiry, error) {
	query := d.db.WithContext(ctx).Model(&model.Inquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Order("createdAt DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var inquiries []*model.Inquiry
	err := query.Find(&inquiries).Error
	return inquiries, err
}

// UpdateInquiryStatus 更新咨询状态
func (d *InquiryDao) UpdateInquiryStatus(ctx context.Context, id int64, status model.InquiryStatus) error {
	result := d.db.WithContext(ctx).Model(&model.Inquiry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"updatedAt": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteInquiry 删除咨询
func (d *InquiryDao) DeleteInquiry(ctx context.Context, id int64) error {
	result := d.db.WithContext(ctx).Delete(&model.Inquiry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StatusCounts 各状态咨询数
func (d *InquiryDao) StatusCounts(ctx context.Context) (map[model.InquiryStatus]int64, error) {
	type row struct {
		Status model.InquiryStatus
		Count  int64
	}
	var rows []row
	err := d.db.WithContext(ctx).Model(&model.Inquiry{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.InquiryStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
