package imageresolver

import (
	"github.com/seokhojung/befunweb/internal/palette"
)

const (
	tylkoCatalogue = "https://media.tylko.com/media/catalogue/catalogue_entry/"
	colorThumbs    = "/images/products/v2/colors/"
)

func thumbs(files ...string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = colorThumbs + f
	}
	return out
}

// DefaultProductMapping returns the curated tier-1 table: externally hosted
// renders keyed by product ID and local renders keyed by slug.
func DefaultProductMapping() ProductMapping {
	return NewProductMapping(map[string]ProductImages{
		"bookcase-001": {
			Main:  "https://media.tylko.com/media/gallery/furniture_image/2022/05/Living_room_08_living-room-Bookcase_EAPgDsY.jpg",
			Hover: tylkoCatalogue + "2024/02/unreal_render_tasks/unreal_50.webp",
			ThumbnailsByColor: map[string]string{
				"white":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/02/unreal_render_tasks/unreal_50_thumbnail.webp",
				"brown":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/02/unreal_render_tasks/unreal_22509_thumbnail.webp",
				"grey":       tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/02/unreal_render_tasks/unreal_24177_thumbnail.webp",
				"black":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/02/unreal_render_tasks/unreal_16043_thumbnail.webp",
				"green":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/02/unreal_render_tasks/unreal_29923_thumbnail.webp",
				"moss-green": tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/02/unreal_render_tasks/unreal_29922_thumbnail.webp",
				"light-wood": tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/02/unreal_render_tasks/unreal_29921_thumbnail.webp",
				"dark-wood":  tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/02/unreal_render_tasks/unreal_15643_thumbnail.webp",
			},
		},
		"bookcase-002": {
			Main:  tylkoCatalogue + "2025/04/unreal_render_tasks/unreal_1300814.webp",
			Hover: tylkoCatalogue + "2025/04/unreal_render_tasks/unreal_1300813.webp",
			ThumbnailsByColor: map[string]string{
				"grey":       tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124137_uCmcm5n_thumbnail.webp",
				"white":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124119_NNu2bN7_thumbnail.webp",
				"brown":      tylkoCatalogue + "2025/04/unreal_render_tasks/unreal_1300813_thumbnail.webp",
				"black":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124127_YH5cTHJ_thumbnail.webp",
				"green":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124129_ToHz64F_thumbnail.webp",
				"light-wood": tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124133_shhCPyL_thumbnail.webp",
				"beige":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124135_4EsNmkR_thumbnail.webp",
			},
		},
		"bookcase-003": {
			Main:  tylkoCatalogue + "2024/12/unreal_render_tasks/unreal_124420_e5NMLX0.webp",
			Hover: tylkoCatalogue + "2024/10/unreal_render_tasks/unreal_124419_e3k3J6s.webp",
			ThumbnailsByColor: map[string]string{
				"brown":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124419_e3k3J6s_thumbnail.webp",
				"white":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124405_uTjABmn_thumbnail.webp",
				"grey":       tylkoCatalogue + "2025/04/unreal_render_tasks/unreal_1300839_thumbnail.webp",
				"black":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124413_3EYImuG_thumbnail.webp",
				"green":      tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124415_4CDWl3t_thumbnail.webp",
				"light-wood": tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124421_MDG5KaT_thumbnail.webp",
				"dark-wood":  tylkoCatalogue + "2025/03/catalogue/catalogue_entry/2024/10/unreal_render_tasks/unreal_124423_8EbC2hA_thumbnail.webp",
			},
		},
		"bookcase-white-doors": {
			Main:  "/images/products/v2/main/Living_room_08_living-room-Bookcase_EAPgDsY.jpg",
			Hover: "/images/products/v2/hover/unreal_50.webp",
			Thumbnails: thumbs("unreal_50_thumbnail.webp", "unreal_22509_thumbnail.webp", "unreal_24177_thumbnail.webp",
				"unreal_16043_thumbnail.webp", "unreal_29923_thumbnail.webp", "unreal_29922_thumbnail.webp",
				"unreal_29921_thumbnail.webp", "unreal_15643_thumbnail.webp"),
		},
		"bookcase-grey-external-drawers": {
			Main:  "/images/products/v2/main/unreal_1075797.webp",
			Hover: "/images/products/v2/hover/unreal_191615_KG3boPp.webp",
			Thumbnails: thumbs("unreal_50_thumbnail.webp", "unreal_212_g9B0kiP_thumbnail.webp", "unreal_124331_ZWcuK1x_thumbnail.webp",
				"unreal_124425_1QAV6ST_thumbnail.webp", "unreal_1063961_thumbnail.webp", "unreal_187283_SkP60Hp_thumbnail.webp",
				"unreal_197_uxXsipd_thumbnail.webp", "unreal_245_iu7gxLQ_thumbnail.webp"),
		},
		"bookcase-brown": {
			Main:  "/images/products/v2/main/unreal_124332_sj5uTGc.webp",
			Hover: "/images/products/v2/hover/unreal_124331_ZWcuK1x.webp",
			Thumbnails: thumbs("unreal_50_thumbnail.webp", "unreal_29921_thumbnail.webp", "unreal_124331_ZWcuK1x_thumbnail.webp",
				"unreal_37_thumbnail.webp", "unreal_1063961_thumbnail.webp", "unreal_4489_thumbnail.webp",
				"unreal_27059_thumbnail.webp", "unreal_124005_Cjj5HZz_thumbnail.webp"),
		},
		"bookcase-grey-doors-storage": {
			Main:  "/images/products/v2/main/907_Tylko_Bookcase_Type1_FINAL_04_living-room-Bookcase.jpg",
			Hover: "/images/products/v2/hover/unreal_212_g9B0kiP.webp",
			Thumbnails: thumbs("unreal_212_g9B0kiP_thumbnail.webp", "unreal_28939_saUa3a5_thumbnail.webp", "unreal_15264_thumbnail.webp",
				"unreal_29928_thumbnail.webp", "unreal_16988_thumbnail.webp", "unreal_9070_thumbnail.webp",
				"unreal_1064021_thumbnail.webp"),
		},
		"bookcase-moss-green": {
			Main:  "/images/products/v2/main/unreal_1065155.webp",
			Hover: "/images/products/v2/hover/unreal_1063961.webp",
			Thumbnails: thumbs("unreal_1063961_thumbnail.webp", "unreal_14040_KBEA61s_thumbnail.webp", "unreal_1255995_thumbnail.webp",
				"unreal_1255994_thumbnail.webp", "unreal_1255992_thumbnail.webp", "unreal_1255991_thumbnail.webp",
				"unreal_8915_thumbnail.webp"),
		},
		"bookcase-black": {
			Main:  "/images/products/v2/main/unreal_124426_cquVq4l.webp",
			Hover: "/images/products/v2/hover/unreal_124425_1QAV6ST.webp",
			Thumbnails: thumbs("unreal_124425_1QAV6ST_thumbnail.webp", "unreal_50_thumbnail.webp", "unreal_29921_thumbnail.webp",
				"unreal_124331_ZWcuK1x_thumbnail.webp", "unreal_1063961_thumbnail.webp", "unreal_4489_thumbnail.webp",
				"unreal_27059_thumbnail.webp", "unreal_124005_Cjj5HZz_thumbnail.webp"),
		},
		"bookcase-light-wood": {
			Main:  "/images/products/v2/main/unreal_156041_2PFDZ4t.webp",
			Hover: "/images/products/v2/hover/unreal_154634_uOy2I1O.webp",
			Thumbnails: thumbs("unreal_50_thumbnail.webp", "unreal_29921_thumbnail.webp", "unreal_124331_ZWcuK1x_thumbnail.webp",
				"unreal_37_thumbnail.webp", "unreal_1063961_thumbnail.webp", "unreal_4489_thumbnail.webp",
				"unreal_27059_thumbnail.webp", "unreal_154634_uOy2I1O_thumbnail.webp"),
		},
	})
}

// tempColors are the colors with prepared temp assets.
var tempColors = []string{
	"white", "grey", "brown", "black", "green", "moss-green", "light-wood",
	"dark-wood", "burgundy", "beige", "sand", "pink", "blue",
}

// DefaultCategoryColorMapping returns the tier-2 table. Bookcase and
// furniture share the bookcase temp assets.
func DefaultCategoryColorMapping() CategoryColorMapping {
	byColor := make(map[string]ImageSet, len(tempColors))
	for _, c := range tempColors {
		byColor[c] = ImageSet{
			Main:      "/images/temp/bookcase-" + c + "-main.webp",
			Hover:     "/images/temp/bookcase-" + c + "-lifestyle.webp",
			Thumbnail: "/images/temp/bookcase-" + c + "-thumb.webp",
		}
	}
	return NewCategoryColorMapping(map[palette.Category]map[string]ImageSet{
		palette.Bookcase:  byColor,
		palette.Furniture: byColor,
	})
}
