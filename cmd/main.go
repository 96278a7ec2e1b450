package main

import (
	"errors"
	"log"
	"os"

	"github.com/chenBenjamin97/court-tracker/pkg/api"
	"github.com/chenBenjamin97/court-tracker/pkg/db"
	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"github.com/chenBenjamin97/court-tracker/pkg/video"
	"github.com/spf13/viper"
)

//Usage:
//	court-tracker                 serve the web API
//	court-tracker play [video]    play video (default: video.default) with the players tracked live
func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	utils.SetDefaults()
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error: Could not read config file, got '%v'", err)
	}

	if viper.GetString("directory.root") == "" || viper.GetString("directory.results") == "" || viper.GetString("detector.model") == "" {
		log.Fatalf("Error: Missing critical configurations")
	}

	//first - create project's data root dir, then the rest of the directories from config file
	if err := utils.EnsureDir(viper.GetString("directory.root")); err != nil {
		log.Printf("Error Creating '%s' directory, got '%v'", viper.GetString("directory.root"), err)
	}

	for _, dir := range viper.GetStringMapString("directory") {
		if err := utils.EnsureDir(dir); err != nil {
			log.Printf("Error Creating '%s' directory, got '%v'", dir, err)
		}
	}

	database, err := db.NewDB(viper.GetString("db.path"))
	if err != nil {
		log.Fatalf("Error: Could not open sessions database, got '%v'", err)
	}
	defer database.Close()

	if len(os.Args) > 1 && os.Args[1] == "play" {
		videoPath := viper.GetString("video.default")
		if len(os.Args) > 2 {
			videoPath = os.Args[2]
		}

		runInteractive(videoPath, database)
		return
	}

	if viper.GetString("frontend.static-files-path") == "" {
		log.Fatalf("Error: Missing critical configurations")
	}

	r := api.SetRouter(database)
	if err := r.Run(":" + viper.GetString("http.port")); err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}
}

func runInteractive(videoPath string, database *db.DB) {
	session, err := video.Run(videoPath, database)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			log.Fatalf("Video file not found: '%s'", videoPath)
		}
		log.Fatalf("Error: Got '%v'", err)
	}

	log.Printf("Session %s saved to '%s'", session.ID, session.ResultsDir)
}
