package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"StockBoard/pkg/database"
)

// Scheduler 定时任务调度器
type Scheduler struct {
	cron *cron.Cron
	db   *database.DB
}

// NewScheduler 创建任务调度器
func NewScheduler(db *database.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		db:   db,
	}
}

// Start 按cron表达式启动持仓重估任务
func (s *Scheduler) Start(revalueSpec string) error {
	if _, err := s.cron.AddFunc(revalueSpec, s.revalueHoldings); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// revalueHoldings 用最新股价重算持仓派生指标
// updateStock改价后，落库的current_value等字段靠这里追上来
func (s *Scheduler) revalueHoldings() {
	updated, err := s.db.Portfolio().RevalueAll()
	if err != nil {
		log.Printf("定时重估持仓失败: %v", err)
		return
	}
	if updated > 0 {
		log.Printf("定时重估完成, 更新%d条持仓", updated)
	}
}
