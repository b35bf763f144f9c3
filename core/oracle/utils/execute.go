package utils

import "github.com/ethereum/go-ethereum/ethclient"

// ExecuteWithClients tries to execute a function with a list of RPC clients.
// The loop stops at the first execution that finishes (with success or
// failure); f reports through its second return value when to stop.
func ExecuteWithClients[T any](clients []*ethclient.Client, f func(client *ethclient.Client) (T, bool, error)) (T, error) {
	var err error
	var stop bool
	var result T
	for _, client := range clients {
		if result, stop, err = f(client); err == nil || stop {
			return result, err
		}
	}

	return result, err
}
