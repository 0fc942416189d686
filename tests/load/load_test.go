// Copyright (C) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// load implements the load tests.
package load_test

import (
	"context"
	"flag"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	log "github.com/inconshreveable/log15"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/ginkgo/v2/formatter"
	"github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/contractvm/client"
	"github.com/ava-labs/contractvm/contracts"
	"github.com/ava-labs/contractvm/contractvm"
)

func TestLoad(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "contractvm load test suites")
}

var (
	requestTimeout time.Duration
	endpoint       string
	workers        int
	terminalCount  uint64
)

func init() {
	flag.DurationVar(
		&requestTimeout,
		"request-timeout",
		30*time.Second,
		"timeout for a single RPC round trip",
	)

	flag.StringVar(
		&endpoint,
		"endpoint",
		"",
		"RPC endpoint of a running server; empty serves a fresh in-process ledger",
	)

	flag.IntVar(
		&workers,
		"workers",
		4,
		"concurrent invokers",
	)

	flag.Uint64Var(
		&terminalCount,
		"terminal-count",
		500,
		"committed invocations to quit at",
	)
}

var (
	server    *httptest.Server
	cli       client.Client
	counterID ids.ID

	baseSequence uint64
	baseCount    uint64
)

var _ = ginkgo.BeforeSuite(func() {
	if endpoint == "" {
		rt, err := contractvm.New(memdb.New(), contracts.Catalog())
		gomega.Expect(err).Should(gomega.BeNil())

		handler, err := contractvm.NewHTTPHandler(rt)
		gomega.Expect(err).Should(gomega.BeNil())

		server = httptest.NewServer(handler)
		endpoint = server.URL
	}
	outf("{{green}}load testing endpoint:{{/}} %q\n", endpoint)
	cli = client.New(endpoint)

	artifact, err := contractvm.EncodeArtifact(contracts.CounterName, nil)
	gomega.Expect(err).Should(gomega.BeNil())

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	counterID, err = cli.Deploy(ctx, artifact, ids.Empty)
	cancel()
	if err != nil {
		// a previous run against a persistent ledger already deployed it
		gomega.Expect(err.Error()).Should(gomega.ContainSubstring("already in use"))
		counterID = contractvm.ContractIDFromArtifact(artifact)
	}

	ctx, cancel = context.WithTimeout(context.Background(), requestTimeout)
	baseSequence, err = cli.Sequence(ctx)
	cancel()
	gomega.Expect(err).Should(gomega.BeNil())

	ctx, cancel = context.WithTimeout(context.Background(), requestTimeout)
	v, found, err := cli.ReadData(ctx, counterID, "COUNTER")
	cancel()
	gomega.Expect(err).Should(gomega.BeNil())
	if found {
		baseCount = uint64(v.Uint32())
	}
})

var _ = ginkgo.AfterSuite(func() {
	if server != nil {
		outf("{{red}}shutting down in-process server{{/}}\n")
		server.Close()
	}
})

var _ = ginkgo.Describe("[Invoke]", func() {
	ginkgo.It("commits every increment exactly once", func() {
		ctx, cancel := context.WithCancel(context.Background())
		g, gctx := errgroup.WithContext(ctx)

		for i := 0; i < workers; i++ {
			g.Go(func() error {
				defer ginkgo.GinkgoRecover()

				// in-flight invokes run on a background context so a
				// cancel never loses a committed increment
				for gctx.Err() == nil {
					_, _, err := cli.Invoke(context.Background(), counterID, "increment", nil)
					gomega.Ω(err).Should(gomega.BeNil())
				}
				return nil
			})
		}

		start := time.Now()
		g.Go(func() error {
			defer ginkgo.GinkgoRecover()

			last := uint64(0)
			for gctx.Err() == nil {
				sequence, err := cli.Sequence(context.Background())
				gomega.Ω(err).Should(gomega.BeNil())

				committed := sequence - baseSequence
				log.Info("performance", "committed", committed,
					"avg ips", float64(committed)/time.Since(start).Seconds(),
					"last ips", float64(committed-last),
				)
				if committed >= terminalCount {
					log.Info("exiting at terminal count")
					cancel()
					return nil
				}
				last = committed
				time.Sleep(1 * time.Second)
			}
			return nil
		})
		gomega.Ω(g.Wait()).Should(gomega.BeNil())
		cancel()

		// the stored count and the committed sequence advance in lockstep;
		// a lost or doubled increment breaks the equality
		fctx, fcancel := context.WithTimeout(context.Background(), requestTimeout)
		sequence, err := cli.Sequence(fctx)
		fcancel()
		gomega.Ω(err).Should(gomega.BeNil())

		fctx, fcancel = context.WithTimeout(context.Background(), requestTimeout)
		v, found, err := cli.ReadData(fctx, counterID, "COUNTER")
		fcancel()
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(found).Should(gomega.BeTrue())

		gomega.Ω(sequence - baseSequence).Should(gomega.BeNumerically(">=", terminalCount))
		gomega.Ω(uint64(v.Uint32()) - baseCount).Should(gomega.Equal(sequence - baseSequence))
	})
})

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}
