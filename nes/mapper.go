package nes

type Mapper interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

func NewMapper(card *Cartridge) (Mapper, error) {
	switch card.Mapper {
	case 0:
		return NewMapper0(card)
	default:
		return nil, &MapperUnsupported{Mapper: card.Mapper}
	}
}
