package client

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/contractvm/contractvm"
)

// Client defines contractvm client operations.
type Client interface {
	// Deploy submits an artifact. Pass ids.Empty to derive the contract ID
	// from the artifact hash. Returns the effective ID.
	Deploy(ctx context.Context, artifact []byte, id ids.ID) (ids.ID, error)

	// Invoke runs a contract function and returns its value and the events
	// it published.
	Invoke(ctx context.Context, id ids.ID, fn string, args []contractvm.Val) (contractvm.Val, []contractvm.Event, error)

	// ReadData reads one entry of a contract's storage without invoking it.
	ReadData(ctx context.Context, id ids.ID, key string) (contractvm.Val, bool, error)

	// GetContract fetches the record of a deployed contract.
	GetContract(ctx context.Context, id ids.ID) (*ContractInfo, error)

	// Sequence returns the number of committed invocations.
	Sequence(ctx context.Context) (uint64, error)
}

// ContractInfo describes a deployed contract.
type ContractInfo struct {
	Program     string
	CodeHash    string
	Description string
}

// New creates a new client object.
func New(uri string) Client {
	req := rpc.NewEndpointRequester(uri)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) Deploy(ctx context.Context, artifact []byte, id ids.ID) (ids.ID, error) {
	artifactHex, err := formatting.Encode(formatting.Hex, artifact)
	if err != nil {
		return ids.Empty, err
	}

	args := &contractvm.DeployArgs{Artifact: artifactHex}
	if id != ids.Empty {
		args.ContractID = contractvm.FormatContractID(id)
	}

	resp := new(contractvm.DeployReply)
	err = cli.req.SendRequest(ctx,
		"contractvm.deploy",
		args,
		resp,
	)
	if err != nil {
		return ids.Empty, err
	}
	return contractvm.ParseContractID(resp.ContractID)
}

func (cli *client) Invoke(ctx context.Context, id ids.ID, fn string, args []contractvm.Val) (contractvm.Val, []contractvm.Event, error) {
	literals := make([]string, len(args))
	for i, v := range args {
		literals[i] = contractvm.FormatVal(v)
	}

	resp := new(contractvm.InvokeReply)
	err := cli.req.SendRequest(ctx,
		"contractvm.invoke",
		&contractvm.InvokeArgs{
			ContractID: contractvm.FormatContractID(id),
			Function:   fn,
			Args:       literals,
		},
		resp,
	)
	if err != nil {
		return contractvm.Val{}, nil, err
	}

	value, err := contractvm.ParseVal(resp.Value)
	if err != nil {
		return contractvm.Val{}, nil, fmt.Errorf("reply value: %w", err)
	}
	events := make([]contractvm.Event, len(resp.Events))
	for i, ev := range resp.Events {
		if events[i], err = decodeEvent(ev); err != nil {
			return contractvm.Val{}, nil, fmt.Errorf("reply event %d: %w", i, err)
		}
	}
	return value, events, nil
}

func (cli *client) ReadData(ctx context.Context, id ids.ID, key string) (contractvm.Val, bool, error) {
	resp := new(contractvm.ReadDataReply)
	err := cli.req.SendRequest(ctx,
		"contractvm.readData",
		&contractvm.ReadDataArgs{
			ContractID: contractvm.FormatContractID(id),
			Key:        key,
		},
		resp,
	)
	if err != nil {
		return contractvm.Val{}, false, err
	}
	if !resp.Found {
		return contractvm.Val{}, false, nil
	}

	value, err := contractvm.ParseVal(resp.Value)
	if err != nil {
		return contractvm.Val{}, false, fmt.Errorf("reply value: %w", err)
	}
	return value, true, nil
}

func (cli *client) GetContract(ctx context.Context, id ids.ID) (*ContractInfo, error) {
	resp := new(contractvm.GetContractReply)
	err := cli.req.SendRequest(ctx,
		"contractvm.getContract",
		&contractvm.GetContractArgs{
			ContractID: contractvm.FormatContractID(id),
		},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return &ContractInfo{
		Program:     resp.Program,
		CodeHash:    resp.CodeHash,
		Description: resp.Description,
	}, nil
}

func (cli *client) Sequence(ctx context.Context) (uint64, error) {
	resp := new(contractvm.SequenceReply)
	err := cli.req.SendRequest(ctx,
		"contractvm.sequence",
		&struct{}{},
		resp,
	)
	if err != nil {
		return 0, err
	}
	return uint64(resp.Sequence), nil
}

func decodeEvent(ev contractvm.EventJSON) (contractvm.Event, error) {
	id, err := contractvm.ParseContractID(ev.ContractID)
	if err != nil {
		return contractvm.Event{}, err
	}

	topics := make([]contractvm.Val, len(ev.Topics))
	for i, topic := range ev.Topics {
		if topics[i], err = contractvm.ParseVal(topic); err != nil {
			return contractvm.Event{}, err
		}
	}

	data, err := contractvm.ParseVal(ev.Data)
	if err != nil {
		return contractvm.Event{}, err
	}
	return contractvm.Event{
		ContractID: id,
		Topics:     topics,
		Data:       data,
	}, nil
}
