package method

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// 规则文件中接受的日期格式
var ruleDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// RewardRule 리워드설정.json中的一条规则
type RewardRule struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	ProductID interface{} `json:"product_id"`
	Reward    interface{} `json:"reward"`
}

// PurchaseRule 가구매설정.json中的一条规则
type PurchaseRule struct {
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	ProductID     interface{} `json:"product_id"`
	PurchaseCount interface{} `json:"purchase_count"`
}

// RewardStore 리워드设置文件的整体结构
type RewardStore struct {
	Rewards []RewardRule `json:"rewards"`
}

// PurchaseStore 가구매设置文件的整体结构
type PurchaseStore struct {
	Purchases []PurchaseRule `json:"purchases"`
}

// parseRuleDate 按多种格式尝试解析日期
func parseRuleDate(dateStr string) (time.Time, bool) {
	for _, format := range ruleDateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// loadRuleFile 读取规则JSON文件，文件不存在、为空或格式错误都视为无规则
func loadRuleFile(path string, out interface{}) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("规则文件读取失败 %s: %v", path, err)
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("规则文件JSON格式错误 %s: %v", path, err)
		return false
	}
	return true
}

// LoadRewardStore 读取리워드设置文件，文件不存在或无效时返回空集合
func LoadRewardStore(path string) RewardStore {
	var store RewardStore
	loadRuleFile(path, &store)
	return store
}

// SaveRewardStore 把리워드设置写回文件
func SaveRewardStore(path string, store RewardStore) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPurchaseStore 读取가구매设置文件，文件不存在或无效时返回空集合
func LoadPurchaseStore(path string) PurchaseStore {
	var store PurchaseStore
	loadRuleFile(path, &store)
	return store
}

// SavePurchaseStore 把가구매设置写回文件
func SavePurchaseStore(path string, store PurchaseStore) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LookupReward 查询指定商品和日期对应的리워드金额
// 按文件顺序线性扫描，返回第一条日期范围（含端点）命中的规则值
// 重叠范围不做调和，先声明者优先；负数或非数字的金额条目被忽略
// 文件缺失、为空、格式错误或无命中一律返回0，从不报错
func LookupReward(rewardFile, productID, dateStr string) int {
	var store RewardStore
	if !loadRuleFile(rewardFile, &store) {
		return 0
	}

	targetDate, ok := parseRuleDate(dateStr)
	if !ok {
		log.Printf("리워드查询: 无法解析日期格式: %s", dateStr)
		return 0
	}

	normalizedTarget := NormalizeProductID(productID)
	for _, entry := range store.Rewards {
		startDate, okStart := parseRuleDate(entry.StartDate)
		endDate, okEnd := parseRuleDate(entry.EndDate)
		if !okStart || !okEnd {
			continue
		}

		if NormalizeProductID(entry.ProductID) != normalizedTarget {
			continue
		}
		if targetDate.Before(startDate) || targetDate.After(endDate) {
			continue
		}

		// 金额必须是非负数字
		if value, ok := entry.Reward.(float64); ok && value >= 0 {
			return int(value)
		}
	}

	return 0
}

// LookupPurchaseCount 查询指定商品和日期对应的가구매개수，规则同LookupReward
func LookupPurchaseCount(purchaseFile, productID, dateStr string) int {
	var store PurchaseStore
	if !loadRuleFile(purchaseFile, &store) {
		return 0
	}

	targetDate, ok := parseRuleDate(dateStr)
	if !ok {
		log.Printf("가구매개수查询: 无法解析日期格式: %s", dateStr)
		return 0
	}

	normalizedTarget := NormalizeProductID(productID)
	for _, entry := range store.Purchases {
		startDate, okStart := parseRuleDate(entry.StartDate)
		endDate, okEnd := parseRuleDate(entry.EndDate)
		if !okStart || !okEnd {
			continue
		}

		if NormalizeProductID(entry.ProductID) != normalizedTarget {
			continue
		}
		if targetDate.Before(startDate) || targetDate.After(endDate) {
			continue
		}

		if value, ok := entry.PurchaseCount.(float64); ok && value >= 0 {
			return int(value)
		}
	}

	return 0
}
