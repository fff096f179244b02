// orderctl queries the order query service from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/discovery"
	"github.com/example/marketplace/pkg/grpc"
	"github.com/example/marketplace/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the config file")
	token := flag.String("token", os.Getenv("MARKETPLACE_TOKEN"), "bearer token of the caller")
	vendorID := flag.Uint("vendor", 0, "vendor to inspect (admins only, default: caller)")
	dashboard := flag.Bool("dashboard", false, "print the sales dashboard instead of vendor orders")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	cfg.Log.OutputPaths = []string{"stderr"}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var sd *discovery.ServiceDiscovery
	if len(cfg.Etcd.Endpoints) > 0 {
		sd, err = discovery.NewServiceDiscovery(&cfg.Etcd, log)
		if err != nil {
			log.Warn("Failed to connect to etcd, using configured address", zap.Error(err))
			sd = nil
		} else {
			defer sd.Close()
		}
	}

	clients := grpc.NewClientManager(cfg, log, sd)
	if err := clients.Connect(); err != nil {
		log.Fatal("Connect failed", zap.Error(err))
	}
	defer clients.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var out *structpb.Struct
	if *dashboard {
		out, err = clients.Query().VendorDashboard(ctx, *token)
	} else {
		out, err = clients.Query().VendorOrders(ctx, *token, uint(*vendorID))
	}
	if err != nil {
		log.Error("Query failed", zap.Error(err))
		cancel()
		os.Exit(1)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(out)
	if err != nil {
		log.Error("Failed to encode response", zap.Error(err))
		cancel()
		os.Exit(1)
	}
	fmt.Println(string(data))
}
