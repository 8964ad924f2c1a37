package remote

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// envelope is the uniform response body of every JSON endpoint:
//
//	{"success": bool, "data": any, "error": {"code", "message", "status"}}
type envelope struct {
	Success bool
	Data    jx.Raw
	Error   *APIError
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	d := jx.DecodeBytes(data)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "success":
			v, err := d.Bool()
			env.Success = v
			return err
		case "data":
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			env.Data = append(jx.Raw(nil), raw...)
			return nil
		case "error":
			if d.Next() == jx.Null {
				return d.Null()
			}
			apiErr, err := decodeAPIError(d)
			if err != nil {
				return err
			}
			env.Error = apiErr
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return envelope{}, errors.Wrap(err, "decode envelope")
	}
	return env, nil
}

func decodeAPIError(d *jx.Decoder) (*APIError, error) {
	if d.Next() == jx.String {
		msg, err := d.Str()
		if err != nil {
			return nil, err
		}
		return &APIError{Message: msg}, nil
	}

	var e APIError
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "code":
			if d.Next() == jx.Number {
				n, err := d.Num()
				e.Code = n.String()
				return err
			}
			v, err := d.Str()
			e.Code = v
			return err
		case "message":
			v, err := d.Str()
			e.Message = v
			return err
		case "status":
			v, err := d.Int()
			e.Status = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode error object")
	}
	return &e, nil
}

// unwrap turns a decoded envelope into the caller's value or an APIError.
func (env envelope) unwrap(out any) error {
	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return &APIError{Message: "request failed"}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(err, "decode data")
	}
	return nil
}
