/*
Package session implements session management and persistence orchestration.

It serializes access to each conversation's state: session memory is owned
by exactly one logical thread of control per turn, so concurrent drivers
(HTTP handlers, multiple replicas) go through the Manager, which combines
in-process reference-counted locks with an optional distributed locker and
a pluggable state store.
*/
package session
