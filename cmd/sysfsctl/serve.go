package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/config"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/metrics"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(o *globalOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Export numeric attributes as Prometheus metrics",
		Long: `Serve /metrics. Every scrape reads the attributes afresh, so values are
never older than the scrape itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("listen") {
				o.cfg.Listen = listen
			}
			handler, err := o.metricsHandler()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, o.cfg.Listen, handler)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", fmt.Sprintf("address to serve metrics on (default %q)", config.DefaultListen))
	return cmd
}

// metricsHandler registers the collector for the configured classes.
func (o *globalOptions) metricsHandler() (http.Handler, error) {
	m, err := o.manager()
	if err != nil {
		return nil, err
	}
	var classes []*sysfs.Class
	m.Each(func(c *sysfs.Class) { classes = append(classes, c) })

	metrics.NodeName = o.cfg.Node
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		metrics.NewCollector(o.cfg.FileSystem(), classes),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}))
	return mux, nil
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		glog.Infof("serving metrics on %s/metrics", addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		glog.Info("shutting down metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
