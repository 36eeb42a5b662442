package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
	"i4.energy/across/btgw/hm1x"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (a *application) probe(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	d, err := a.openDriver(ctx, true)
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.TestOrDisconnect(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Module answered", "result", result)
	fmt.Fprintln(c.App.Writer, result)
	return nil
}

// moduleInfo is what the info command prints.
type moduleInfo struct {
	Version    string `json:"version"`
	EDRName    string `json:"edr_name"`
	BLEName    string `json:"ble_name"`
	EDRAddress string `json:"edr_address"`
	BLEAddress string `json:"ble_address"`
	EDRRole    string `json:"edr_role,omitempty"`
	BLERole    string `json:"ble_role,omitempty"`
	Baud       int    `json:"baud,omitempty"`
}

func (a *application) info(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	d, err := a.openDriver(ctx, false)
	if err != nil {
		return err
	}
	defer d.Close()

	info, err := readInfo(ctx, d)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

// readInfo collects the module identity. Only the version is required;
// the rest is best effort.
func readInfo(ctx context.Context, d *hm1x.Driver) (moduleInfo, error) {
	version, err := d.Version(ctx)
	if err != nil {
		return moduleInfo{}, fmt.Errorf("read version: %w", err)
	}
	info := moduleInfo{
		Version:    version,
		EDRName:    d.EDRName(ctx),
		BLEName:    d.BLEName(ctx),
		EDRAddress: d.EDRModuleAddress(ctx),
		BLEAddress: d.BLEModuleAddress(ctx),
	}
	if role, err := d.Role(ctx, hm1x.EDR); err == nil {
		info.EDRRole = role.String()
	}
	if role, err := d.Role(ctx, hm1x.BLE); err == nil {
		info.BLERole = role.String()
	}
	if baud, err := d.Baud(ctx); err == nil {
		info.Baud = baud
	}
	return info, nil
}

func (a *application) setName(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.NewExitError("usage: set-name <edr|ble> <name>", 2)
	}
	radio, err := hm1x.ParseRadio(c.Args().Get(0))
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	d, err := a.openDriver(ctx, false)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.SetName(ctx, radio, c.Args().Get(1)); err != nil {
		return err
	}
	a.logger.Info("Name set", "radio", radio, "name", c.Args().Get(1))
	return nil
}

func (a *application) forceBaud(c *cli.Context) error {
	rate, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return cli.NewExitError("usage: force-baud <rate>", 2)
	}

	ctx, stop := signalContext()
	defer stop()

	d, err := a.openDriver(ctx, true)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.ForceBaud(ctx, rate); err != nil {
		return err
	}
	if err := d.Reset(ctx); err != nil {
		a.logger.Warn("Reset not acknowledged", "error", err)
	}
	a.logger.Info("Module moved", "baud", rate)
	return nil
}

func (a *application) factoryReset(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	d, err := a.openDriver(ctx, false)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.FactoryReset(ctx); err != nil {
		return err
	}
	a.logger.Info("Factory defaults restored")
	return nil
}

func (a *application) serve(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	d, err := a.openDriver(ctx, false)
	if err != nil {
		return err
	}
	defer func() {
		a.logger.Info("Closing module connection")
		if err := d.Close(); err != nil {
			a.logger.Error("Failed to close module", "error", err)
		}
	}()

	if err := d.SetupPoll(ctx); err != nil {
		return fmt.Errorf("enable notifications: %w", err)
	}

	server := NewServer(a.logger.With("component", "server"), d, a.config.PollInterval)
	httpServer := &http.Server{
		Addr:    a.config.BindAddress,
		Handler: server,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	g.Go(func() error {
		a.logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Closing HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
