package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
)

// statusColors 状态分布图的展示配色 未列出的状态一律灰色
var statusColors = map[model.OrderStatus]string{
	model.OrderStatusReceived:      "#eab308",
	model.OrderStatusSentToCourier: "#3b82f6",
	model.OrderStatusDelivered:     "#10b981",
}

const statusColorDefault = "#6b7280"

// statusOrder 状态分布的固定输出顺序
var statusOrder = []model.OrderStatus{
	model.OrderStatusReceived,
	model.OrderStatusIssued,
	model.OrderStatusSentToCourier,
	model.OrderStatusInTransit,
	model.OrderStatusDelivered,
	model.OrderStatusCancelled,
}

// DashboardStats 仪表盘计数器
// pending 和 received 是同一谓词的两个名字 前端两处都在用
type DashboardStats struct {
	Total    int64   `json:"total"`
	Pending  int64   `json:"pending"`
	Received int64   `json:"received"`
	Issued   int64   `json:"issued"`
	Courier  int64   `json:"courier"`
	Today    int64   `json:"today"`
	Monthly  int64   `json:"monthly"`
	Revenue  float64 `json:"revenue"`
}

// StatusSlice 状态分布的一个扇区
type StatusSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

// Analytics 报表聚合结果
type Analytics struct {
	TotalRevenue float64       `json:"totalRevenue"`
	TotalOrders  int64         `json:"totalOrders"`
	StatusData   []StatusSlice `json:"statusData"`
}

// StatsService 聚合/报表引擎 纯读侧 每次调用从源表重算
type StatsService struct {
	orderDao *dao.OrderDao
}

func NewStatsService(orderDao *dao.OrderDao) *StatsService {
	return &StatsService{orderDao: orderDao}
}

// DashboardStats 计算仪表盘全部计数器 空表时全为零
func (s *StatsService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.orderDao.StatusCounts(ctx)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}

	stats := &DashboardStats{}
	for status, count := range counts {
		stats.Total += count
		switch status.Canonical() {
		case model.OrderStatusReceived:
			stats.Received += count
		case model.OrderStatusIssued:
			stats.Issued += count
		case model.OrderStatusSentToCourier, model.OrderStatusInTransit, model.OrderStatusDelivered:
			stats.Courier += count
		}
	}
	// 旧仪表盘同时展示pending和received 两者是同一个谓词
	stats.Pending = stats.Received

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.orderDao.CountCreatedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	stats.Today = today

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthly, err := s.orderDao.CountCreatedBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	stats.Monthly = monthly

	revenue, err := s.orderDao.SumTotalAmount(ctx)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	stats.Revenue = revenue

	return stats, nil
}

// Analytics 营收总额 订单总数和状态分布
// 历史sended计入sent-to-courier扇区
func (s *StatsService) Analytics(ctx context.Context) (*Analytics, error) {
	counts, err := s.orderDao.StatusCounts(ctx)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}

	merged := make(map[model.OrderStatus]int64, len(counts))
	var totalOrders int64
	for status, count := range counts {
		merged[status.Canonical()] += count
		totalOrders += count
	}

	statusData := make([]StatusSlice, 0, len(merged))
	emitted := make(map[model.OrderStatus]bool, len(statusOrder))
	for _, status := range statusOrder {
		count, ok := merged[status]
		if !ok {
			continue
		}
		statusData = append(statusData, StatusSlice{
			Name:  titleCase(string(status)),
			Value: count,
			Color: sliceColor(status),
		})
		emitted[status] = true
	}

	// 库里出现过枚举外的状态也要给扇区 灰色垫底 排在已知状态之后
	var leftovers []model.OrderStatus
	for status := range merged {
		if !emitted[status] {
			leftovers = append(leftovers, status)
		}
	}
	sort.Slice(leftovers, func(i, j int) bool { return leftovers[i] < leftovers[j] })
	for _, status := range leftovers {
		statusData = append(statusData, StatusSlice{
			Name:  titleCase(string(status)),
			Value: merged[status],
			Color: sliceColor(status),
		})
	}

	revenue, err := s.orderDao.SumTotalAmount(ctx)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}

	return &Analytics{
		TotalRevenue: revenue,
		TotalOrders:  totalOrders,
		StatusData:   statusData,
	}, nil
}

func sliceColor(status model.OrderStatus) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return statusColorDefault
}

// titleCase 首字母大写 与旧接口的展示名保持一致
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
