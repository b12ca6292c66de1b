// cc-injector - inject live text captions into a video stream as CEA-608
//  Copyright (C) 2026, Streamtools
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"

	"github.com/streamtools/cc-injector/ingest"
)

const (
	dbusName = "org.streamtools.ccinjector"
	dbusPath = "/org/streamtools/ccinjector"
)

type service struct {
	poller *ingest.Poller
}

func startService(poller *ingest.Poller) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{
		poller: poller,
	}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")

	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// InjectCaption queues text for display, same as a UDP caption
// message. The frame loop picks it up on the next frame.
func (s *service) InjectCaption(text string) *dbus.Error {
	if _, ok := ingest.LatestLine(text); !ok {
		return &dbus.Error{
			Name: dbusName + ".InjectCaption",
			Body: []interface{}{"no displayable text in message"},
		}
	}
	s.poller.Inject(text)
	return nil
}

// Status reports the current roll-up display state.
func (s *service) Status() (string, *dbus.Error) {
	if processor == nil {
		return "", &dbus.Error{
			Name: dbusName + ".Status",
			Body: []interface{}{"no decoder connection yet"},
		}
	}
	return processor.Status(), nil
}
