// Edge Detection and Image Segmentation
// Desktop front end over OpenCV: still images or a live camera feed,
// Sobel, Canny, thresholding and K-means segmentation side by side.

package main

import (
	"flag"
	"io"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"edge-segmentation/internal/camera"
	"edge-segmentation/internal/config"
	"edge-segmentation/internal/gui"
)

const (
	AppName    = "Edge Detection and Image Segmentation"
	AppID      = "com.example.edge-segmentation"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "Path to a TOML configuration file")
	probe := flag.Bool("probe", false, "Read one frame from the configured camera and exit")
	flag.Parse()

	cfg, cfgErr := config.Load(*configPath)
	if *debugMode {
		cfg.Debug = true
	}

	logger, closeLog := initLogger(cfg)
	defer closeLog()

	if cfgErr != nil {
		logger.WithError(cfgErr).Warn("Using default configuration")
	}

	logger.WithFields(logrus.Fields{
		"version":       AppVersion,
		"debug_mode":    cfg.Debug,
		"config":        *configPath,
		"camera_device": cfg.CameraDevice,
		"poll_interval": cfg.PollInterval.Duration,
	}).Info("Starting " + AppName)

	if *probe {
		if err := probeCamera(cfg.CameraDevice, logger); err != nil {
			logger.WithError(err).Error("Camera probe failed")
			closeLog()
			os.Exit(1)
		}
		return
	}

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.MediaVideoIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, cfg, logger)
	defer mainApp.Close()

	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
}

// probeCamera opens device index, reads a single frame and logs its geometry.
func probeCamera(index int, logger *logrus.Logger) error {
	return camera.WithSource(camera.OpenDevice, index, logger, func(src *camera.Source) error {
		frame, err := src.ReadNext()
		defer frame.Close()
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"device":   index,
			"width":    frame.Cols(),
			"height":   frame.Rows(),
			"channels": frame.Channels(),
		}).Info("Camera probe succeeded")
		return nil
	})
}

// initLogger configures level and format from cfg. With log_file set,
// output is mirrored to a size-rotated file.
func initLogger(cfg *config.Config) (*logrus.Logger, func()) {
	logger := logrus.New()

	var out io.Writer = os.Stdout
	closeFn := func() {}
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closeFn = func() { _ = rotator.Close() }
	}
	logger.SetOutput(out)

	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   cfg.LogFile == "",
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger, closeFn
}
