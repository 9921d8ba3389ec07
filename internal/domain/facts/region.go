package facts

import "strings"

type Region string

const (
	RegionNorth   Region = "north"
	RegionCentral Region = "central"
	RegionSouth   Region = "south"
	RegionUnknown Region = ""
)

// Static province-code partition. Provinces are reference data owned by the
// geography collaborator; the partition itself changes rarely enough to live
// here as a constant table.
var provinceRegions = map[string]Region{}

func init() {
	north := []string{
		"ha_noi", "hai_phong", "quang_ninh", "bac_ninh", "hai_duong",
		"hung_yen", "thai_binh", "ha_nam", "nam_dinh", "ninh_binh",
		"vinh_phuc", "bac_giang", "phu_tho", "thai_nguyen", "bac_kan",
		"cao_bang", "lang_son", "tuyen_quang", "ha_giang", "lao_cai",
		"yen_bai", "lai_chau", "dien_bien", "son_la", "hoa_binh",
	}
	central := []string{
		"thanh_hoa", "nghe_an", "ha_tinh", "quang_binh", "quang_tri",
		"thua_thien_hue", "da_nang", "quang_nam", "quang_ngai",
		"binh_dinh", "phu_yen", "khanh_hoa", "ninh_thuan", "binh_thuan",
		"kon_tum", "gia_lai", "dak_lak", "dak_nong", "lam_dong",
	}
	south := []string{
		"ho_chi_minh", "binh_duong", "dong_nai", "ba_ria_vung_tau",
		"tay_ninh", "binh_phuoc", "long_an", "tien_giang", "ben_tre",
		"tra_vinh", "vinh_long", "dong_thap", "an_giang", "kien_giang",
		"can_tho", "hau_giang", "soc_trang", "bac_lieu", "ca_mau",
	}
	for _, c := range north {
		provinceRegions[c] = RegionNorth
	}
	for _, c := range central {
		provinceRegions[c] = RegionCentral
	}
	for _, c := range south {
		provinceRegions[c] = RegionSouth
	}
}

// ProvinceRegion resolves a province code to its region, RegionUnknown when
// the code is empty or unmapped.
func ProvinceRegion(code string) Region {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return RegionUnknown
	}
	if r, ok := provinceRegions[code]; ok {
		return r
	}
	return RegionUnknown
}
