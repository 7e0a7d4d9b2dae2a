package models

import "github.com/kyros-barber/KB-BookingService/internal/domain"

// Response модели

// BranchCountResponse количество записей филиала
type BranchCountResponse struct {
	BranchID   int64  `json:"branchId"`
	BranchName string `json:"branchName"`
	Count      int64  `json:"count"`
}

// BranchCountsResponse записи по филиалам бизнеса
type BranchCountsResponse struct {
	Branches []BranchCountResponse `json:"branches"`
}

// ServiceCountResponse популярность одной услуги
type ServiceCountResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Count       int64  `json:"count"`
}

// PopularServicesResponse услуги по числу бронирований
type PopularServicesResponse struct {
	Services []ServiceCountResponse `json:"services"`
}

// RevenueBucketResponse выручка одной группы
// Для периода day метка — час ("09:00"), для week — день недели,
// для month — число месяца
type RevenueBucketResponse struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// RevenueResponse выручка за период с разбивкой по группам
type RevenueResponse struct {
	Period       string                  `json:"period"`
	From         string                  `json:"from"` // ISO 8601
	To           string                  `json:"to"`   // ISO 8601
	TotalRevenue float64                 `json:"totalRevenue"`
	TotalCount   int64                   `json:"totalCount"`
	Buckets      []RevenueBucketResponse `json:"buckets"`
}

// Методы конвертации

// FromDomainBranchCounts конвертирует счетчики филиалов в DTO
func FromDomainBranchCounts(counts []domain.BranchCount) *BranchCountsResponse {
	resp := &BranchCountsResponse{
		Branches: make([]BranchCountResponse, 0, len(counts)),
	}
	for _, c := range counts {
		resp.Branches = append(resp.Branches, BranchCountResponse{
			BranchID:   c.BranchID,
			BranchName: c.BranchName,
			Count:      c.Count,
		})
	}
	return resp
}

// FromDomainServiceCounts конвертирует счетчики услуг в DTO
func FromDomainServiceCounts(counts []domain.ServiceCount) *PopularServicesResponse {
	resp := &PopularServicesResponse{
		Services: make([]ServiceCountResponse, 0, len(counts)),
	}
	for _, c := range counts {
		resp.Services = append(resp.Services, ServiceCountResponse{
			ServiceID:   c.ServiceID,
			ServiceName: c.ServiceName,
			Count:       c.Count,
		})
	}
	return resp
}

// FromDomainRevenueBuckets конвертирует группы выручки в DTO
func FromDomainRevenueBuckets(buckets []domain.RevenueBucket) []RevenueBucketResponse {
	out := make([]RevenueBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, RevenueBucketResponse{
			Label:   b.Label,
			Revenue: b.Revenue,
			Count:   b.Count,
		})
	}
	return out
}
