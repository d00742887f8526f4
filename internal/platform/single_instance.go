package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strconv"
	"sync"
)

// ErrAlreadyRunning indicates another timer already holds the lock.
var ErrAlreadyRunning = errors.New("shutdown timer already running")

const (
	lockHost        = "127.0.0.1"
	instanceMinPort = 20000
	instanceMaxPort = 39999
)

// InstanceLock keeps a loopback port bound for as long as this process owns
// the countdown.
type InstanceLock struct {
	port     int
	listener net.Listener
	once     sync.Once
	released bool
	err      error
}

// AcquireSingleInstance binds the port derived from appName. It fails with
// ErrAlreadyRunning while another process holds that port.
func AcquireSingleInstance(appName string) (*InstanceLock, error) {
	port := portFromName(appName)
	listener, err := net.Listen("tcp", lockAddress(port))
	if err != nil {
		return nil, fmt.Errorf("%w: port %d: %v", ErrAlreadyRunning, port, err)
	}
	return &InstanceLock{port: port, listener: listener}, nil
}

// Held reports whether the lock has not been released yet.
func (lock *InstanceLock) Held() bool {
	return lock != nil && !lock.released
}

// Release unbinds the port. Later calls return the first call's result.
func (lock *InstanceLock) Release() error {
	if lock == nil {
		return nil
	}
	lock.once.Do(func() {
		lock.err = lock.listener.Close()
		lock.released = true
	})
	return lock.err
}

// Address returns the loopback address the lock is bound to.
func (lock *InstanceLock) Address() string {
	if lock == nil {
		return ""
	}
	return lockAddress(lock.port)
}

func lockAddress(port int) string {
	return net.JoinHostPort(lockHost, strconv.Itoa(port))
}

// portFromName maps appName onto [instanceMinPort, instanceMaxPort].
func portFromName(appName string) int {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(appName))
	span := uint64(instanceMaxPort - instanceMinPort + 1)
	return instanceMinPort + int(hash.Sum64()%span)
}
