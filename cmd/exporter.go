package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"vigi-cli/internal/client"
	"vigi-cli/pkg/models"
)

// Variables to hold flag values
var (
	expHost       string
	expUser       string
	expPass       string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	api    *client.VigiClient
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	// 1. Initial Login
	log.Println("Attempting initial login...")
	if err := p.api.Authenticate(); err != nil {
		log.Printf("Fatal: Initial login failed: %v", err)
		// Exit so the service manager attempts a restart.
		os.Exit(1)
	}
	log.Println("Initial login successful.")

	// 2. Setup Prometheus
	registry := prometheus.NewRegistry()
	collector := &VigiCollector{Client: p.api}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("VIGI Exporter listening on %s", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR LOGIC ---

type VigiCollector struct {
	Client *client.VigiClient
	Mutex  sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"vigi_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"vigi_scrape_duration_seconds", "Time taken to scrape the camera.", nil, nil,
	)
	slotsUsedDesc = prometheus.NewDesc(
		"vigi_custom_audio_slots_used", "Occupied custom audio slots.", nil, nil,
	)
	slotsTotalDesc = prometheus.NewDesc(
		"vigi_custom_audio_slots_total", "Custom audio slots the camera offers.", nil, nil,
	)
	slotInfoDesc = prometheus.NewDesc(
		"vigi_custom_audio_slot_info", "Occupied slot with its display name.", []string{"id", "name"}, nil,
	)
)

func (c *VigiCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- slotsUsedDesc
	ch <- slotsTotalDesc
	ch <- slotInfoDesc
}

func (c *VigiCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0

	ch <- prometheus.MustNewConstMetric(slotsTotalDesc, prometheus.GaugeValue, float64(len(models.CustomAudioSlots)))

	if audios, err := c.fetchAudiosWithRelogin(); err == nil {
		ch <- prometheus.MustNewConstMetric(slotsUsedDesc, prometheus.GaugeValue, float64(len(audios)))
		for _, a := range audios {
			ch <- prometheus.MustNewConstMetric(slotInfoDesc, prometheus.GaugeValue, 1,
				strconv.Itoa(int(a.ID)), a.Name)
		}
	} else {
		success = 0.0
		log.Printf("Error scraping custom audio: %v", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// fetchAudiosWithRelogin retries exactly once after re-authenticating, which
// covers camera-side session expiry between scrapes.
func (c *VigiCollector) fetchAudiosWithRelogin() ([]models.CustomAudio, error) {
	res, err := c.Client.GetCustomAudioList()
	if err == nil {
		return res, nil
	}
	if isAuthError(err) {
		if e := c.Client.Authenticate(); e == nil {
			return c.Client.GetCustomAudioList()
		}
	}
	return nil, err
}

func isAuthError(err error) bool {
	var authErr *client.AuthError
	return errors.As(err, &authErr)
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes camera metrics
(reachability, custom audio slot occupancy). Can be installed as a system
service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Setup Client Config
		cfg := client.Config{
			Host:     expHost,
			Username: expUser,
			Password: expPass,
		}

		// 2. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "vigi-exporter",
			DisplayName: "VIGI Camera Prometheus Exporter",
			Description: "Exposes TP-Link VIGI camera metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--host", expHost,
				"--username", expUser,
				"--password", expPass,
				"--port", expPort,
			},
		}

		prg := &program{
			api: client.New(cfg),
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" {
				// Validate required flags before installing
				if expHost == "" || expPass == "" {
					log.Fatal("Error: You must provide --host and --password to install the service.")
				}
			}

			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when run interactively
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expHost, "host", "", "Camera IP address")
	exporterCmd.Flags().StringVar(&expUser, "username", "admin", "Camera username")
	exporterCmd.Flags().StringVar(&expPass, "password", "", "Camera password")
	exporterCmd.Flags().StringVar(&expPort, "port", "9180", "Port to listen on")

	// Flag for Service Control
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
