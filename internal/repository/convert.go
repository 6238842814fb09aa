package repository

import (
	"strings"
	"time"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

var collectedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseCollectedAt(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range collectedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func userDaoToDomain(u dao.UserDTO) domain.User {
	return domain.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func sellerDaoToDomain(s *dao.SellerDTO) *domain.Seller {
	if s == nil {
		return nil
	}
	seller := &domain.Seller{
		ID:    s.ID,
		Name:  s.Name,
		Email: s.Email,
		Role:  s.Role,
	}
	if p := s.SellerProfile; p != nil {
		seller.Profile = &domain.SellerProfile{
			ShopName: p.ShopName,
			Phone:    p.Phone,
			City:     p.City,
			Address:  p.Address,
		}
	}
	return seller
}

func productDaoToDomain(p dao.ProductDTO) domain.Product {
	images := make([]domain.ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, domain.ProductImage{
			ID:       img.ID,
			Path:     img.Path,
			Position: img.Position,
		})
	}

	status, ok := domain.ParseProductStatus(p.Status)
	if !ok {
		status = domain.ProductStatus(strings.ToLower(p.Status))
	}

	return domain.Product{
		ID:             p.ID,
		SellerID:       p.SellerID,
		Seller:         sellerDaoToDomain(p.Seller),
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		SizeMinMM:      p.SizeMinMM,
		SizeMaxMM:      p.SizeMaxMM,
		Karat:          p.Karat,
		WeightG:        p.WeightG,
		Price:          p.Price,
		Stock:          p.Stock,
		Status:         status,
		CoverImagePath: p.CoverImagePath,
		Images:         images,
	}
}

func productPtrDaoToDomain(p *dao.ProductDTO) *domain.Product {
	if p == nil {
		return nil
	}
	out := productDaoToDomain(*p)
	return &out
}

func productInputToDao(in domain.ProductInput) dao.ProductRequest {
	status := in.Status
	if status == "" {
		status = domain.StatusPublished
	}
	return dao.ProductRequest{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		SizeMinMM:   in.SizeMinMM,
		SizeMaxMM:   in.SizeMaxMM,
		Karat:       in.Karat,
		WeightG:     in.WeightG,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      string(status),
	}
}

func goldDaoToDomain(g dao.GoldPriceDTO) domain.GoldQuote {
	return domain.GoldQuote{
		ID:                g.ID,
		Source:            g.Source,
		BaseCurrency:      g.BaseCurrency,
		PricePerOunce:     g.PricePerOunce,
		PricePerGram:      g.PricePerGram,
		PricePerGramLocal: g.PricePerGramMAD,
		Karat:             g.Karat,
		CollectedAt:       parseCollectedAt(g.CollectedAt),
	}
}

func sizeDaoToDomain(s dao.SavedSizeDTO) domain.SavedSize {
	return domain.SavedSize{
		ID:              s.ID,
		UserID:          s.UserID,
		Kind:            s.Type,
		DiameterMM:      s.DiameterMM,
		CircumferenceMM: s.CircumferenceMM,
		Standard:        s.Standard,
		Label:           s.Label,
	}
}

func favoriteDaoToDomain(f dao.FavoriteDTO) domain.Favorite {
	return domain.Favorite{
		ID:        f.ID,
		UserID:    f.UserID,
		ProductID: f.ProductID,
		Product:   productPtrDaoToDomain(f.Product),
	}
}

func cartItemDaoToDomain(c dao.CartItemDTO) domain.CartLine {
	return domain.CartLine{
		ID:        c.ID,
		UserID:    c.UserID,
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		Product:   productPtrDaoToDomain(c.Product),
	}
}
