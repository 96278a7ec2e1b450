package utils

//PersonClass is the COCO class id the detector uses for a person
const PersonClass = 0

//MinPlayerWidth is the minimum bounding box width (exclusive, in pixels) for a person to be considered a player
const MinPlayerWidth = 80

//MinPlayerHeight is the minimum bounding box height (exclusive, in pixels) for a person to be considered a player
const MinPlayerHeight = 160

//HeatmapWindow is how many of the most recent positions of each player contribute to the heatmap
const HeatmapWindow = 30

//HeatmapRadius is the radius of the disc stamped around each recent position
const HeatmapRadius = 25

//HeatmapKernel is the size of the gaussian kernel used to smooth the heatmap (must be odd)
const HeatmapKernel = 31

//HeatmapAlpha is the weight of the colorized heatmap when blended over the frame
const HeatmapAlpha = 0.3

//SummaryFileName is the name of the summary written at the end of each session
const SummaryFileName = "player_tracking_results.json"

//TrajectoryPlotFileName is the name of the plotted trajectories image written at the end of each session
const TrajectoryPlotFileName = "trajectories.png"

//QuitKey and PauseKey are the keyboard keys handled by the interactive session
const (
	QuitKey  = 'q'
	PauseKey = 'p'
)
