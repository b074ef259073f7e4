package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"StockBoard/pkg/model"
)

type WatchlistDB struct {
	db *gorm.DB
}

// Add 添加自选股，允许同一用户重复添加同一只股票
func (w *WatchlistDB) Add(userID, symbol string, notes *string) (*model.WatchlistItem, error) {
	normalized := NormalizeSymbol(symbol)
	stock, err := findStockBySymbol(w.db, normalized)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, symbol)
	}

	item := model.WatchlistItem{
		UserID:  userID,
		StockID: stock.ID,
		Symbol:  stock.Symbol,
		Notes:   notes,
	}
	if err := w.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("添加自选股失败: %w", err)
	}
	return &item, nil
}

// GetByUser 查询用户自选股列表
func (w *WatchlistDB) GetByUser(userID string) ([]*model.WatchlistItem, error) {
	var items []*model.WatchlistItem
	err := w.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询自选股失败: %w", err)
	}
	return items, nil
}

// Update 更新备注
// notesSet为false表示请求没带任何字段，原样返回现有行
func (w *WatchlistDB) Update(id int64, notes *string, notesSet bool) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := w.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrWatchlistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("查询自选股失败: %w", err)
	}

	if !notesSet {
		return &item, nil
	}

	if err := w.db.Model(&item).Update("notes", notes).Error; err != nil {
		return nil, fmt.Errorf("更新自选股失败: %w", err)
	}
	item.Notes = notes
	return &item, nil
}

// Delete 删除自选股，返回是否真的删掉了一行
func (w *WatchlistDB) Delete(id int64) (bool, error) {
	result := w.db.Delete(&model.WatchlistItem{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("删除自选股失败: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
