package utils

import (
	"fmt"
	"image/color"

	"github.com/spf13/viper"
)

//Player1DefaultColor and Player2DefaultColor are used when no color is configured for a player
var (
	Player1DefaultColor = color.RGBA{0, 255, 0, 0}
	Player2DefaultColor = color.RGBA{255, 165, 0, 0}
)

//SetDefaults registers default values for every configuration key that has a sane default.
//Keys without defaults (directories, model path) must come from the config file.
func SetDefaults() {
	viper.SetDefault("video.prod_format", "mp4")
	viper.SetDefault("video.default", "test.mp4")
	viper.SetDefault("video.window_title", "Court Tracker - Players Only")

	viper.SetDefault("detector.confidence", 0.25)
	viper.SetDefault("detector.nms", 0.7)
	viper.SetDefault("detector.input_size", 640)

	viper.SetDefault("tracking.person_class", PersonClass)
	viper.SetDefault("tracking.min_width", MinPlayerWidth)
	viper.SetDefault("tracking.min_height", MinPlayerHeight)

	viper.SetDefault("heatmap.window", HeatmapWindow)
	viper.SetDefault("heatmap.radius", HeatmapRadius)
	viper.SetDefault("heatmap.kernel", HeatmapKernel)
	viper.SetDefault("heatmap.alpha", HeatmapAlpha)

	viper.SetDefault("colors.player1", []int{int(Player1DefaultColor.R), int(Player1DefaultColor.G), int(Player1DefaultColor.B)})
	viper.SetDefault("colors.player2", []int{int(Player2DefaultColor.R), int(Player2DefaultColor.G), int(Player2DefaultColor.B)})

	viper.SetDefault("http.port", "8080")
	viper.SetDefault("db.path", "sessions.db")
}

//ColorFromConfig reads an [R, G, B] triple from given config key, falling back to given default
//when the key is missing
func ColorFromConfig(key string, fallback color.RGBA) (color.RGBA, error) {
	values := viper.GetIntSlice(key)
	if len(values) == 0 {
		return fallback, nil
	}

	return ParseRGB(values)
}

//ParseRGB converts an [R, G, B] triple into a color
func ParseRGB(values []int) (color.RGBA, error) {
	if len(values) != 3 {
		return color.RGBA{}, fmt.Errorf("ParseRGB: Expected 3 values, got %d", len(values))
	}

	for _, v := range values {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("ParseRGB: Value %d out of range [0,255]", v)
		}
	}

	return color.RGBA{uint8(values[0]), uint8(values[1]), uint8(values[2]), 0}, nil
}
