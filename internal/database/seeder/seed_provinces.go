package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"
)

type ProvincesSeeder struct{}

func (ProvincesSeeder) Name() string { return "provinces" }

// Run seeds the provinces used by location scoring. Codes must stay in
// sync with the region partition in the facts package.
func (ProvincesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "provinces", "id", "code", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Code string
		Name string
	}{
		{Code: "ha_noi", Name: "Hà Nội"},
		{Code: "hai_phong", Name: "Hải Phòng"},
		{Code: "quang_ninh", Name: "Quảng Ninh"},
		{Code: "bac_ninh", Name: "Bắc Ninh"},
		{Code: "hai_duong", Name: "Hải Dương"},
		{Code: "hung_yen", Name: "Hưng Yên"},
		{Code: "thai_binh", Name: "Thái Bình"},
		{Code: "ha_nam", Name: "Hà Nam"},
		{Code: "nam_dinh", Name: "Nam Định"},
		{Code: "ninh_binh", Name: "Ninh Bình"},
		{Code: "vinh_phuc", Name: "Vĩnh Phúc"},
		{Code: "bac_giang", Name: "Bắc Giang"},
		{Code: "phu_tho", Name: "Phú Thọ"},
		{Code: "thai_nguyen", Name: "Thái Nguyên"},
		{Code: "bac_kan", Name: "Bắc Kạn"},
		{Code: "cao_bang", Name: "Cao Bằng"},
		{Code: "lang_son", Name: "Lạng Sơn"},
		{Code: "tuyen_quang", Name: "Tuyên Quang"},
		{Code: "ha_giang", Name: "Hà Giang"},
		{Code: "lao_cai", Name: "Lào Cai"},
		{Code: "yen_bai", Name: "Yên Bái"},
		{Code: "lai_chau", Name: "Lai Châu"},
		{Code: "dien_bien", Name: "Điện Biên"},
		{Code: "son_la", Name: "Sơn La"},
		{Code: "hoa_binh", Name: "Hòa Bình"},
		{Code: "thanh_hoa", Name: "Thanh Hóa"},
		{Code: "nghe_an", Name: "Nghệ An"},
		{Code: "ha_tinh", Name: "Hà Tĩnh"},
		{Code: "quang_binh", Name: "Quảng Bình"},
		{Code: "quang_tri", Name: "Quảng Trị"},
		{Code: "thua_thien_hue", Name: "Thừa Thiên Huế"},
		{Code: "da_nang", Name: "Đà Nẵng"},
		{Code: "quang_nam", Name: "Quảng Nam"},
		{Code: "quang_ngai", Name: "Quảng Ngãi"},
		{Code: "binh_dinh", Name: "Bình Định"},
		{Code: "phu_yen", Name: "Phú Yên"},
		{Code: "khanh_hoa", Name: "Khánh Hòa"},
		{Code: "ninh_thuan", Name: "Ninh Thuận"},
		{Code: "binh_thuan", Name: "Bình Thuận"},
		{Code: "kon_tum", Name: "Kon Tum"},
		{Code: "gia_lai", Name: "Gia Lai"},
		{Code: "dak_lak", Name: "Đắk Lắk"},
		{Code: "dak_nong", Name: "Đắk Nông"},
		{Code: "lam_dong", Name: "Lâm Đồng"},
		{Code: "ho_chi_minh", Name: "Hồ Chí Minh"},
		{Code: "binh_duong", Name: "Bình Dương"},
		{Code: "dong_nai", Name: "Đồng Nai"},
		{Code: "ba_ria_vung_tau", Name: "Bà Rịa - Vũng Tàu"},
		{Code: "tay_ninh", Name: "Tây Ninh"},
		{Code: "binh_phuoc", Name: "Bình Phước"},
		{Code: "long_an", Name: "Long An"},
		{Code: "tien_giang", Name: "Tiền Giang"},
		{Code: "ben_tre", Name: "Bến Tre"},
		{Code: "tra_vinh", Name: "Trà Vinh"},
		{Code: "vinh_long", Name: "Vĩnh Long"},
		{Code: "dong_thap", Name: "Đồng Tháp"},
		{Code: "an_giang", Name: "An Giang"},
		{Code: "kien_giang", Name: "Kiên Giang"},
		{Code: "can_tho", Name: "Cần Thơ"},
		{Code: "hau_giang", Name: "Hậu Giang"},
		{Code: "soc_trang", Name: "Sóc Trăng"},
		{Code: "bac_lieu", Name: "Bạc Liêu"},
		{Code: "ca_mau", Name: "Cà Mau"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO provinces (code, name) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
			it.Code,
			it.Name,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
