package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/voxelnet/mt"
	"github.com/voxelnet/mt/rudp"
)

func run(ctx context.Context, cfg *Config) error {
	level, _ := parseLevel(cfg.LogLevel)
	log := newLogger(level)

	srvAddr, err := net.ResolveUDPAddr("udp", cfg.Dial)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	conn := cfg.Conn
	conn.Logger = log
	conn.Metrics = rudp.NewMetrics(reg)

	lc, err := net.ListenPacket("udp", cfg.Listen)
	if err != nil {
		return err
	}
	l := mt.Listen(lc, conn)
	log.Info("listening", "addr", lc.LocalAddr(), "server", srvAddr)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics != "" {
		srv := newMetricsServer(cfg.Metrics, reg)
		g.Go(func() error {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		l.Close()
		return lc.Close()
	})

	g.Go(func() error {
		for {
			clt, err := l.Accept(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				return err
			}

			go func() {
				if err := serve(ctx, log, clt, srvAddr, conn); err != nil {
					log.Warn("proxy", "clt", clt.RemoteAddr(), "err", err)
				}
			}()
		}
	})

	err = g.Wait()
	log.Info("stopped")
	return err
}

func newMetricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// serve connects clt to the server and forwards commands until either side
// disconnects.
func serve(ctx context.Context, log *slog.Logger, clt mt.Peer, srvAddr *net.UDPAddr, cfg rudp.Config) error {
	pc, err := net.ListenPacket("udp", "")
	if err != nil {
		clt.Close()
		return err
	}
	srv := mt.Connect(pc, srvAddr, cfg)

	log = log.With("clt", clt.RemoteAddr(), "id", clt.ID())
	log.Info("connected to server", "local", pc.LocalAddr())

	var g errgroup.Group
	g.Go(func() error { return forward(ctx, log.With("dir", "to srv"), clt, srv) })
	g.Go(func() error { return forward(ctx, log.With("dir", "to clt"), srv, clt) })
	return g.Wait()
}

// forward copies packets from src to dest byte for byte and
// closes dest once src is gone.
func forward(ctx context.Context, log *slog.Logger, src, dest mt.Peer) error {
	defer dest.Close()

	for {
		pkt, err := src.Peer.Recv(ctx)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				if err := src.WhyClosed(); err != nil {
					log.Info("disconnected", "err", err)
				} else {
					log.Info("disconnected")
				}
				return nil
			}
			if ctx.Err() != nil {
				src.Close()
				return nil
			}
			return err
		}

		cmd, err := src.Decode(pkt.Data)
		switch {
		case cmd == nil && errors.Is(err, mt.ErrUnknownCmd):
			log.Debug("forwarding unknown cmd", "err", err)
		case cmd == nil:
			log.Warn("forwarding undecodable cmd", "err", err)
		case err != nil:
			log.Debug("trailing data", "cmd", fmt.Sprintf("%T", cmd), "err", err)
		}
		if cmd != nil {
			log.Debug("forward", "cmd", fmt.Sprintf("%T", cmd), "ch", pkt.Channel, "unrel", pkt.Unrel)
		}

		if _, err := dest.Peer.Send(ctx, pkt); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn("send", "err", err)
		}
	}
}
